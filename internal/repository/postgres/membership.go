package postgres

import (
	"context"
	"database/sql"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Add(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (project_id, user_id, email, added_on) VALUES ($1, $2, $3, $4)`
	m.AddedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, m.ProjectID, m.UserID, m.Email, m.AddedOn)
	return translate(err)
}

func (r *membershipRepository) Exists(ctx context.Context, projectID, userID int32) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM memberships WHERE project_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

func (r *membershipRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.User, []domain.Membership, error) {
	query := `SELECT u.id, u.auth_uid, u.email, u.name, u.created_on, u.updated_on,
	                 m.project_id, m.user_id, m.email, m.added_on
	          FROM users u
	          JOIN memberships m ON u.id = m.user_id
	          WHERE m.project_id = $1
	          ORDER BY m.added_on`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, nil, translate(err)
	}
	defer rows.Close()

	var users []domain.User
	var members []domain.Membership
	for rows.Next() {
		var u domain.User
		var m domain.Membership
		if err := rows.Scan(&u.ID, &u.AuthUID, &u.Email, &u.Name, &u.CreatedOn, &u.UpdatedOn,
			&m.ProjectID, &m.UserID, &m.Email, &m.AddedOn); err != nil {
			return nil, nil, translate(err)
		}
		users = append(users, u)
		members = append(members, m)
	}
	return users, members, rows.Err()
}

func (r *membershipRepository) Remove(ctx context.Context, projectID, userID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	return translate(err)
}
