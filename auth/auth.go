// Package auth talks to the external identity provider. The service never
// verifies credentials itself, it only forwards and asks.
package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier resolves a bearer token to a stable user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	User         User   `json:"user"`
}
