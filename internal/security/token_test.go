package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("unit-test-secret-0123456789abcdef-xyz", 60, 10080)

	token, err := m.GenerateAccessToken(42, "ana@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "stepline", claims.Issuer)
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	m := NewTokenManager("unit-test-secret-0123456789abcdef-xyz", 60, 10080)

	token, err := m.GenerateRefreshToken(42, "ana@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("unit-test-secret-0123456789abcdef-xyz", 60, 10080)
	other := NewTokenManager("a-completely-different-secret-value-!!", 60, 10080)

	token, err := issuer.GenerateAccessToken(42, "ana@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	m := NewTokenManager("unit-test-secret-0123456789abcdef-xyz", -1, -1)

	token, err := m.GenerateAccessToken(42, "ana@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("unit-test-secret-0123456789abcdef-xyz", 60, 10080)

	_, err := m.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
