package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/memory"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/store"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters-long"

type testAPI struct {
	t      *testing.T
	db     *memory.DB
	stores store.Stores
	router chi.Router
}

// newTestAPI builds the policy router over a fresh memory store and a real
// token service.
func newTestAPI(t *testing.T, gateBookingWrites bool) *testAPI {
	t.Helper()

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 300,
		CookieName:           "token",
	})
	require.NoError(t, err)

	db := memory.New()
	stores := db.Stores()
	router := NewRouter(RouterDeps{
		Stores:            stores,
		Tokens:            tokens,
		Cookies:           auth.NewCookiePolicy("token", false),
		GateBookingWrites: gateBookingWrites,
	})
	return &testAPI{t: t, db: db, stores: stores, router: router}
}

// do sends a request through the router. body is JSON-encoded unless it is
// a string, which is sent verbatim.
func (a *testAPI) do(method, target string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// login exchanges email for a session cookie via POST /jwt.
func (a *testAPI) login(email string) *http.Cookie {
	a.t.Helper()

	w := a.do(http.MethodPost, "/jwt", map[string]string{"email": email}, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	a.t.Fatalf("no session cookie in response")
	return nil
}

func (a *testAPI) seedService(name, provider string) domain.Service {
	a.t.Helper()

	svc := domain.Service{ServiceName: name, ProviderEmail: provider, Price: 10}
	_, err := a.stores.Services.Insert(context.Background(), &svc)
	require.NoError(a.t, err)
	return svc
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
