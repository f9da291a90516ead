package identity

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNoEmail is returned when the provider token carries no email claim.
// Every account in this system is keyed by a verified email address.
var ErrNoEmail = errors.New("identity token has no email claim")

// Claims is the identity the external OAuth provider vouches for.
type Claims struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier validates a provider-issued ID token and returns the
// identity claims it carries. The provider is the trust boundary; nothing
// beyond the returned claims is assumed.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Claims, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier builds a TokenVerifier backed by Firebase Auth.
// With an empty credentials file it falls back to application default
// credentials.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Claims, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify identity token: %w", err)
	}

	claims := &Claims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		claims.Name = name
	}
	if claims.Email == "" {
		return nil, ErrNoEmail
	}
	return claims, nil
}
