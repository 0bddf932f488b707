package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
)

// minSecretLength is the shortest HMAC secret accepted.
const minSecretLength = 32

// hmacTokenService is an implementation of TokenService using HMAC-SHA256.
type hmacTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	leeway        time.Duration
}

// jwtCustomClaims is the token payload.
type jwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService signing with cfg.JWTSecret. Tokens
// live for cfg.TokenLifetimeMinutes and expire exactly then.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	return newTokenService(
		cfg.JWTSecret,
		time.Duration(cfg.TokenLifetimeMinutes)*time.Minute,
		time.Now,
	), nil
}

func newTokenService(secret string, lifetime time.Duration, timeFunc func() time.Time) *hmacTokenService {
	return &hmacTokenService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
	}
}

// IssueToken creates a signed token for email.
func (s *hmacTokenService) IssueToken(ctx context.Context, email string) (string, time.Time, error) {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return "", time.Time{}, ErrMissingEmail
	}

	now := s.timeFunc()
	expiresAt := now.Add(s.tokenLifetime)

	claims := jwtCustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign session token",
			slog.String("error", err.Error()),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken validates token and returns its claims.
func (s *hmacTokenService) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token verification failed: expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			log.Debug("token verification failed: not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token verification failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.Email == "" {
		log.Debug("token verification failed: invalid claims")
		return nil, ErrInvalidToken
	}

	out := &Claims{
		Email: claims.Email,
		ID:    claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
