package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stepline-backend/internal/security"
)

type contextKey string

const (
	userIDKey    contextKey = "user-id"
	userEmailKey contextKey = "user-email"
)

// AuthMiddleware validates backend session tokens and stashes the caller's
// identity in the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, http.StatusUnauthorized, "wrong token type")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext extracts the authenticated user's ID set by the
// middleware.
func UserIDFromContext(ctx context.Context) (int32, error) {
	id, ok := ctx.Value(userIDKey).(int32)
	if !ok || id == 0 {
		return 0, errors.New("no authenticated user in context")
	}
	return id, nil
}
