package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/servicehub-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	IssueTokenFn  func(ctx context.Context, email string) (string, time.Time, error)
	VerifyTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when functions aren't set
	Token     string
	ExpiresAt time.Time
	IssueErr  error
	Claims    *auth.Claims
	VerifyErr error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueToken implements auth.TokenService.
func (m *MockTokenService) IssueToken(ctx context.Context, email string) (string, time.Time, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, email)
	}
	return m.Token, m.ExpiresAt, m.IssueErr
}

// VerifyToken implements auth.TokenService.
func (m *MockTokenService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, token)
	}
	return m.Claims, m.VerifyErr
}
