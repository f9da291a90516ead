package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserMock(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func TestUserRepository_Create(t *testing.T) {
	repo, mock := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("uid-1", "ana@example.com", "Ana", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(42)))

	u := &domain.User{AuthUID: "uid-1", Email: "ana@example.com", Name: "Ana"}
	err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, int32(42), u.ID)
}

func TestUserRepository_Create_DuplicateAuthUID(t *testing.T) {
	repo, mock := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_auth_uid_key"})

	err := repo.Create(context.Background(), &domain.User{AuthUID: "uid-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_GetByEmail_CaseInsensitive(t *testing.T) {
	repo, mock := newUserMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "auth_uid", "email", "name", "created_on", "updated_on"}).
		AddRow(int32(5), "uid-5", "bo@example.com", "Bo", now, now)

	// The query lowercases both sides; the argument passes through as given.
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(email) = LOWER($1)`)).
		WithArgs("Bo@Example.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "Bo@Example.com")
	require.NoError(t, err)
	assert.Equal(t, int32(5), u.ID)
	assert.Equal(t, "bo@example.com", u.Email)
}

func TestUserRepository_GetByAuthUID_NotFound(t *testing.T) {
	repo, mock := newUserMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE auth_uid = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByAuthUID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
