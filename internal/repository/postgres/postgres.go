package postgres

import (
	"database/sql"
	"errors"

	"stepline-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProjectRepository
	repository.StepRepository
	repository.MembershipRepository
	repository.InvitationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		ProjectRepository:    NewProjectRepository(db),
		StepRepository:       NewStepRepository(db),
		MembershipRepository: NewMembershipRepository(db),
		InvitationRepository: NewInvitationRepository(db),
	}
}

// translate maps driver-level errors onto the repository sentinels so that
// services never see raw pq errors. Unique-violation (23505) carries the
// dedup invariants that used to be best-effort checks in the app layer.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}
