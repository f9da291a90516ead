package postgres

import (
	"context"
	"regexp"
	"testing"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipMock(t *testing.T) (repository.MembershipRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMembershipRepository(db), mock
}

func TestMembershipRepository_Add(t *testing.T) {
	repo, mock := newMembershipMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO memberships`)).
		WithArgs(int32(7), int32(2), "a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := &domain.Membership{ProjectID: 7, UserID: 2, Email: "a@x.com"}
	err := repo.Add(context.Background(), m)
	require.NoError(t, err)
	assert.False(t, m.AddedOn.IsZero())
}

func TestMembershipRepository_Add_Duplicate(t *testing.T) {
	repo, mock := newMembershipMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO memberships`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "memberships_pkey"})

	err := repo.Add(context.Background(), &domain.Membership{ProjectID: 7, UserID: 2})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestMembershipRepository_Exists(t *testing.T) {
	repo, mock := newMembershipMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM memberships`)).
		WithArgs(int32(7), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.Exists(context.Background(), 7, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}
