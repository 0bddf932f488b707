package middleware

import (
	"errors"
	"net/http"

	"github.com/phrazzld/servicehub-api/internal/api/shared"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/metrics"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
)

// AuthMiddleware gates routes on the session cookie and on ownership of the
// requested scope.
type AuthMiddleware struct {
	tokens     auth.TokenService
	cookieName string
	recorder   metrics.Recorder
}

// NewAuthMiddleware creates an AuthMiddleware reading the session token from
// the named cookie. A nil recorder disables decision metrics.
func NewAuthMiddleware(tokens auth.TokenService, cookieName string, recorder metrics.Recorder) *AuthMiddleware {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AuthMiddleware{
		tokens:     tokens,
		cookieName: cookieName,
		recorder:   recorder,
	}
}

// Authenticate verifies the session cookie and stores the caller's claims in
// the request context. Requests without a valid token are answered with 401
// before the wrapped handler runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			m.recorder.RecordAuthDecision(metrics.DecisionMissingToken)
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				domain.ErrUnauthorized.Error(), auth.ErrMissingToken)
			return
		}

		claims, err := m.tokens.VerifyToken(r.Context(), cookie.Value)
		if err != nil {
			m.recorder.RecordAuthDecision(metrics.DecisionInvalidToken)
			var opts []shared.ResponseOption
			if !isTokenError(err) {
				err = errors.Join(auth.ErrInvalidToken, err)
			}
			if errors.Is(err, auth.ErrInvalidToken) {
				// A bad signature may be a forged cookie.
				opts = append(opts, shared.WithElevatedLogLevel())
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				domain.ErrUnauthorized.Error(), err, opts...)
			return
		}

		m.recorder.RecordAuthDecision(metrics.DecisionAuthenticated)
		next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
	})
}

func isTokenError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrMissingToken)
}

// GetClaims extracts the caller's claims from the request context.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	return shared.ClaimsFromContext(r.Context())
}
