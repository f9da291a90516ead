package repository

import (
	"context"
	"errors"
	"time"

	"stepline-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert collides with a uniqueness
	// constraint (membership per user, pending invitation per email).
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByAuthUID(ctx context.Context, uid string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	ListByMember(ctx context.Context, userID int32) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int32) error
}

type StepRepository interface {
	Create(ctx context.Context, step *domain.Step) error
	GetByID(ctx context.Context, id int32) (*domain.Step, error)
	ListByProject(ctx context.Context, projectID int32) ([]domain.Step, error)
	Update(ctx context.Context, step *domain.Step) error
	Delete(ctx context.Context, id int32) error
}

type MembershipRepository interface {
	Add(ctx context.Context, m *domain.Membership) error
	Exists(ctx context.Context, projectID, userID int32) (bool, error)
	ListByProject(ctx context.Context, projectID int32) ([]domain.User, []domain.Membership, error)
	Remove(ctx context.Context, projectID, userID int32) error
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetPendingByToken(ctx context.Context, token string) (*domain.Invitation, error)
	HasPending(ctx context.Context, projectID int32, email string) (bool, error)
	ListPendingByProject(ctx context.Context, projectID int32) ([]domain.Invitation, error)
	MarkAccepted(ctx context.Context, token string, userID int32, at time.Time) error
	MarkDispatched(ctx context.Context, token string, at time.Time) error
	MarkReminded(ctx context.Context, token string, at time.Time) error
	ListUndispatched(ctx context.Context) ([]domain.Invitation, error)
	ListExpiringSoon(ctx context.Context, within time.Duration) ([]domain.Invitation, error)
}
