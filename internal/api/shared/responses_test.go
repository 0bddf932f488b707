package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/servicehub-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLoggedRequest returns a request whose context carries a trace ID and a
// logger writing to the returned buffer.
func newLoggedRequest(t *testing.T) (*http.Request, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	ctx := WithTraceID(req.Context(), "test-trace-id")
	ctx = logger.WithContext(ctx, log)
	return req.WithContext(ctx), &buf
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req, _ := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]bool{"success": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestRespondWithJSON_Null(t *testing.T) {
	t.Parallel()

	req, _ := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, nil)
	assert.Equal(t, "null\n", w.Body.String())
}

func TestRespondWithJSON_EncodingError(t *testing.T) {
	t.Parallel()

	req, buf := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})
	assert.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req, _ := newLoggedRequest(t)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "unauthorized access")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized access", body.Error)
	assert.Equal(t, "test-trace-id", body.TraceID)
}

func TestRespondWithError_DefaultMessage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body["error"])
	assert.NotContains(t, body, "trace_id")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		message   string
		err       error
		elevate   bool
		wantLevel string
	}{
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			message:   "An unexpected error occurred",
			err:       errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			wantLevel: "level=ERROR",
		},
		{
			name:      "client error logs at debug",
			status:    http.StatusBadRequest,
			message:   "Invalid request",
			err:       errors.New("bad input"),
			wantLevel: "level=DEBUG",
		},
		{
			name:      "elevated client error",
			status:    http.StatusForbidden,
			message:   "forbidden access",
			err:       errors.New("scope mismatch"),
			elevate:   true,
			wantLevel: "level=WARN",
		},
		{
			name:      "rate limited",
			status:    http.StatusTooManyRequests,
			message:   "too many requests",
			err:       errors.New("limit"),
			wantLevel: "level=WARN",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req, buf := newLoggedRequest(t)
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			RespondWithErrorAndLog(w, req, tc.status, tc.message, tc.err, opts...)

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Error)
			assert.Equal(t, "test-trace-id", body.TraceID)
			assert.NotContains(t, w.Body.String(), tc.err.Error(), "raw error never reaches the client")

			logs := buf.String()
			assert.Contains(t, logs, tc.wantLevel)
			assert.Contains(t, logs, "error_type=")
		})
	}
}

func TestWithElevatedLogLevel(t *testing.T) {
	t.Parallel()

	var opts responseOptions
	WithElevatedLogLevel()(&opts)
	assert.True(t, opts.elevateLogLevel)
}
