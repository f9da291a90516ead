package postgres

import (
	"context"
	"database/sql"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `token, project_id, email, invited_by, status, created_on, expires_on, accepted_on, accepted_by, dispatched_on, reminded_on`

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO project_invitations (token, project_id, email, invited_by, status, created_on, expires_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, inv.Token, inv.ProjectID, inv.Email, inv.InvitedBy, inv.Status, inv.CreatedOn, inv.ExpiresOn)
	return translate(err)
}

func (r *invitationRepository) GetPendingByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM project_invitations WHERE token = $1 AND status = $2`
	row := r.db.QueryRowContext(ctx, query, token, domain.InvitationStatusPending)
	return scanInvitation(row)
}

func (r *invitationRepository) HasPending(ctx context.Context, projectID int32, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM project_invitations WHERE project_id = $1 AND LOWER(email) = LOWER($2) AND status = $3)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, projectID, email, domain.InvitationStatusPending).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

func (r *invitationRepository) ListPendingByProject(ctx context.Context, projectID int32) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM project_invitations
	          WHERE project_id = $1 AND status = $2 ORDER BY created_on`
	return r.queryInvitations(ctx, query, projectID, domain.InvitationStatusPending)
}

func (r *invitationRepository) MarkAccepted(ctx context.Context, token string, userID int32, at time.Time) error {
	query := `UPDATE project_invitations SET status = $1, accepted_on = $2, accepted_by = $3 WHERE token = $4 AND status = $5`
	_, err := r.db.ExecContext(ctx, query, domain.InvitationStatusAccepted, at, userID, token, domain.InvitationStatusPending)
	return translate(err)
}

func (r *invitationRepository) MarkDispatched(ctx context.Context, token string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE project_invitations SET dispatched_on = $1 WHERE token = $2`, at, token)
	return translate(err)
}

func (r *invitationRepository) MarkReminded(ctx context.Context, token string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE project_invitations SET reminded_on = $1 WHERE token = $2`, at, token)
	return translate(err)
}

func (r *invitationRepository) ListUndispatched(ctx context.Context) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM project_invitations
	          WHERE status = $1 AND dispatched_on IS NULL AND expires_on > $2 ORDER BY created_on`
	return r.queryInvitations(ctx, query, domain.InvitationStatusPending, time.Now())
}

func (r *invitationRepository) ListExpiringSoon(ctx context.Context, within time.Duration) ([]domain.Invitation, error) {
	now := time.Now()
	query := `SELECT ` + invitationColumns + ` FROM project_invitations
	          WHERE status = $1 AND dispatched_on IS NOT NULL AND reminded_on IS NULL
	            AND expires_on > $2 AND expires_on <= $3 ORDER BY expires_on`
	return r.queryInvitations(ctx, query, domain.InvitationStatusPending, now, now.Add(within))
}

func (r *invitationRepository) queryInvitations(ctx context.Context, query string, args ...interface{}) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, *inv)
	}
	return invs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var acceptedOn, dispatchedOn, remindedOn sql.NullTime
	var acceptedBy sql.NullInt32
	err := row.Scan(&inv.Token, &inv.ProjectID, &inv.Email, &inv.InvitedBy, &inv.Status,
		&inv.CreatedOn, &inv.ExpiresOn, &acceptedOn, &acceptedBy, &dispatchedOn, &remindedOn)
	if err != nil {
		return nil, translate(err)
	}
	if acceptedOn.Valid {
		inv.AcceptedOn = &acceptedOn.Time
	}
	if acceptedBy.Valid {
		inv.AcceptedBy = &acceptedBy.Int32
	}
	if dispatchedOn.Valid {
		inv.DispatchedOn = &dispatchedOn.Time
	}
	if remindedOn.Valid {
		inv.RemindedOn = &remindedOn.Time
	}
	return inv, nil
}
