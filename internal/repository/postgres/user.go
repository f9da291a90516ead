package postgres

import (
	"context"
	"database/sql"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (auth_uid, email, name, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, u.AuthUID, u.Email, u.Name, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, auth_uid, email, name, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.AuthUID, &u.Email, &u.Name, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, auth_uid, email, name, created_on, updated_on FROM users WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.AuthUID, &u.Email, &u.Name, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) GetByAuthUID(ctx context.Context, uid string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, auth_uid, email, name, created_on, updated_on FROM users WHERE auth_uid = $1`
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&u.ID, &u.AuthUID, &u.Email, &u.Name, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name = $1, updated_on = $2 WHERE id = $3`
	u.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, u.Name, u.UpdatedOn, u.ID)
	return translate(err)
}
