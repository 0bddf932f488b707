package auth

import (
	"context"
	"time"
)

// TokenService issues and verifies session tokens. A token binds an email
// identity for a fixed lifetime; it carries no roles or scopes.
type TokenService interface {
	// IssueToken signs a token for email and returns it with its expiry.
	IssueToken(ctx context.Context, email string) (string, time.Time, error)

	// VerifyToken checks the signature and lifetime of token and returns its
	// claims. Failures map to ErrInvalidToken, ErrExpiredToken or
	// ErrTokenNotYetValid.
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// Claims is the verified content of a session token.
type Claims struct {
	// Email is the identity the token was issued for.
	Email string `json:"email"`

	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
