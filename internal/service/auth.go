package service

import (
	"context"
	"errors"
	"strings"

	"stepline-backend/internal/domain"
	"stepline-backend/internal/identity"
	"stepline-backend/internal/logger"
	"stepline-backend/internal/repository"
	"stepline-backend/internal/security"
)

var ErrInvalidSession = errors.New("invalid or expired session token")

type authService struct {
	userRepo repository.UserRepository
	verifier identity.TokenVerifier
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, verifier identity.TokenVerifier, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		tokens:   tokens,
	}
}

// ExchangeSession trades a provider ID token for backend session tokens.
// The user record is created on first sign-in; on later sign-ins only the
// display name is refreshed.
func (s *authService) ExchangeSession(ctx context.Context, idToken string) (*domain.User, string, string, error) {
	claims, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", "", ErrNotAuthenticated
	}

	user, err := s.resolveUser(ctx, claims)
	if err != nil {
		return nil, "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) resolveUser(ctx context.Context, claims *identity.Claims) (*domain.User, error) {
	user, err := s.userRepo.GetByAuthUID(ctx, claims.UID)
	if err == nil {
		if claims.Name != "" && claims.Name != user.Name {
			user.Name = claims.Name
			if err := s.userRepo.Update(ctx, user); err != nil {
				logger.Warn("failed to refresh display name", "user_id", user.ID, "error", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &domain.User{
		AuthUID: claims.UID,
		Email:   strings.ToLower(claims.Email),
		Name:    claims.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two first sign-ins can race; the unique constraint on auth_uid
		// makes the loser re-read the winner's row.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.userRepo.GetByAuthUID(ctx, claims.UID)
		}
		return nil, err
	}
	logger.Info("created user on first sign-in", "user_id", user.ID)
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidSession
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", ErrInvalidSession
	}

	// The user may have been deleted since the token was issued.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInvalidSession
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
