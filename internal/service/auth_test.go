package service_test

import (
	"context"
	"errors"
	"testing"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/identity"
	"stepline-backend/internal/repository"
	"stepline-backend/internal/security"
	"stepline-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "unit-test-secret-0123456789abcdef-xyz"

func newAuthFixture() (*MockUserRepo, *MockVerifier, service.AuthService) {
	userRepo := new(MockUserRepo)
	verifier := new(MockVerifier)
	tokens := security.NewTokenManager(testJWTSecret, 60, 10080)
	return userRepo, verifier, service.NewAuthService(userRepo, verifier, tokens)
}

func TestAuthService_ExchangeSession_FirstSignInCreatesUser(t *testing.T) {
	userRepo, verifier, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("Verify", mock.Anything, "provider-token").
		Return(&identity.Claims{UID: "uid-1", Email: "Ana@Example.com", Name: "Ana"}, nil)
	userRepo.On("GetByAuthUID", mock.Anything, "uid-1").Return(nil, repository.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.AuthUID == "uid-1" && u.Email == "ana@example.com" && u.Name == "Ana"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil)

	user, access, refresh, err := svc.ExchangeSession(ctx, "provider-token")
	require.NoError(t, err)
	assert.Equal(t, int32(42), user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}

func TestAuthService_ExchangeSession_RefreshesDisplayName(t *testing.T) {
	userRepo, verifier, svc := newAuthFixture()
	ctx := context.Background()

	existing := &domain.User{ID: 5, AuthUID: "uid-5", Email: "bo@example.com", Name: "Old Name"}
	verifier.On("Verify", mock.Anything, "provider-token").
		Return(&identity.Claims{UID: "uid-5", Email: "bo@example.com", Name: "New Name"}, nil)
	userRepo.On("GetByAuthUID", mock.Anything, "uid-5").Return(existing, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 5 && u.Name == "New Name"
	})).Return(nil)

	user, _, _, err := svc.ExchangeSession(ctx, "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	userRepo.AssertExpectations(t)
}

func TestAuthService_ExchangeSession_CreateRaceRereadsWinner(t *testing.T) {
	userRepo, verifier, svc := newAuthFixture()
	ctx := context.Background()

	winner := &domain.User{ID: 9, AuthUID: "uid-9", Email: "c@example.com"}
	verifier.On("Verify", mock.Anything, "provider-token").
		Return(&identity.Claims{UID: "uid-9", Email: "c@example.com"}, nil)
	userRepo.On("GetByAuthUID", mock.Anything, "uid-9").Return(nil, repository.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
	userRepo.On("GetByAuthUID", mock.Anything, "uid-9").Return(winner, nil).Once()

	user, _, _, err := svc.ExchangeSession(ctx, "provider-token")
	require.NoError(t, err)
	assert.Equal(t, int32(9), user.ID)
}

func TestAuthService_ExchangeSession_BadProviderToken(t *testing.T) {
	_, verifier, svc := newAuthFixture()
	ctx := context.Background()

	verifier.On("Verify", mock.Anything, "garbage").Return(nil, errors.New("token verification failed"))

	_, _, _, err := svc.ExchangeSession(ctx, "garbage")
	assert.ErrorIs(t, err, service.ErrNotAuthenticated)
}

func TestAuthService_Refresh(t *testing.T) {
	userRepo, _, svc := newAuthFixture()
	ctx := context.Background()

	tokens := security.NewTokenManager(testJWTSecret, 60, 10080)
	refreshToken, err := tokens.GenerateRefreshToken(5, "bo@example.com")
	require.NoError(t, err)

	userRepo.On("GetByID", mock.Anything, int32(5)).
		Return(&domain.User{ID: 5, Email: "bo@example.com"}, nil)

	access, refresh, err := svc.Refresh(ctx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	_, _, svc := newAuthFixture()
	ctx := context.Background()

	tokens := security.NewTokenManager(testJWTSecret, 60, 10080)
	accessToken, err := tokens.GenerateAccessToken(5, "bo@example.com")
	require.NoError(t, err)

	// An access token must not be usable for refresh.
	_, _, err = svc.Refresh(ctx, accessToken)
	assert.ErrorIs(t, err, service.ErrInvalidSession)
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	userRepo, _, svc := newAuthFixture()
	ctx := context.Background()

	tokens := security.NewTokenManager(testJWTSecret, 60, 10080)
	refreshToken, err := tokens.GenerateRefreshToken(5, "bo@example.com")
	require.NoError(t, err)

	userRepo.On("GetByID", mock.Anything, int32(5)).Return(nil, repository.ErrNotFound)

	_, _, err = svc.Refresh(ctx, refreshToken)
	assert.ErrorIs(t, err, service.ErrInvalidSession)
}
