package postgres

import (
	"context"
	"database/sql"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (name, description, owner_id, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	if p.Status == "" {
		p.Status = domain.ProjectStatusActive
	}
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.OwnerID, p.Status, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
	return translate(err)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	p := &domain.Project{}
	query := `SELECT id, name, COALESCE(description, ''), owner_id, status, created_on, updated_on FROM projects WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *projectRepository) ListByMember(ctx context.Context, userID int32) ([]domain.Project, error) {
	query := `SELECT p.id, p.name, COALESCE(p.description, ''), p.owner_id, p.status, p.created_on, p.updated_on
	          FROM projects p
	          JOIN memberships m ON p.id = m.project_id
	          WHERE m.user_id = $1
	          ORDER BY p.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, translate(err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = $1, description = $2, status = $3, updated_on = $4 WHERE id = $5`
	p.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Status, p.UpdatedOn, p.ID)
	return translate(err)
}

func (r *projectRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return translate(err)
}
