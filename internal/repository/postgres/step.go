package postgres

import (
	"context"
	"database/sql"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

type stepRepository struct {
	db *sql.DB
}

func NewStepRepository(db *sql.DB) repository.StepRepository {
	return &stepRepository{db: db}
}

func (r *stepRepository) Create(ctx context.Context, s *domain.Step) error {
	query := `INSERT INTO steps (project_id, title, note, position, created_on)
	          VALUES ($1, $2, $3, COALESCE((SELECT MAX(position) + 1 FROM steps WHERE project_id = $1), 1), $4)
	          RETURNING id, position`
	s.CreatedOn = time.Now()
	err := r.db.QueryRowContext(ctx, query, s.ProjectID, s.Title, s.Note, s.CreatedOn).Scan(&s.ID, &s.Position)
	return translate(err)
}

func (r *stepRepository) GetByID(ctx context.Context, id int32) (*domain.Step, error) {
	s := &domain.Step{}
	query := `SELECT id, project_id, title, COALESCE(note, ''), position, completed_on, created_on FROM steps WHERE id = $1`
	var completedOn sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.ProjectID, &s.Title, &s.Note, &s.Position, &completedOn, &s.CreatedOn)
	if err != nil {
		return nil, translate(err)
	}
	if completedOn.Valid {
		s.CompletedOn = &completedOn.Time
	}
	return s, nil
}

func (r *stepRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.Step, error) {
	query := `SELECT id, project_id, title, COALESCE(note, ''), position, completed_on, created_on
	          FROM steps WHERE project_id = $1 ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var steps []domain.Step
	for rows.Next() {
		var s domain.Step
		var completedOn sql.NullTime
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Title, &s.Note, &s.Position, &completedOn, &s.CreatedOn); err != nil {
			return nil, translate(err)
		}
		if completedOn.Valid {
			s.CompletedOn = &completedOn.Time
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

func (r *stepRepository) Update(ctx context.Context, s *domain.Step) error {
	query := `UPDATE steps SET title = $1, note = $2, position = $3, completed_on = $4 WHERE id = $5`
	var completedOn interface{}
	if s.CompletedOn != nil {
		completedOn = *s.CompletedOn
	}
	_, err := r.db.ExecContext(ctx, query, s.Title, s.Note, s.Position, completedOn, s.ID)
	return translate(err)
}

func (r *stepRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM steps WHERE id = $1`, id)
	return translate(err)
}
