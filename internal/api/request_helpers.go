package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/servicehub-api/internal/domain"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
)

// getPathID parses the named chi URL parameter as a record ID.
func getPathID(r *http.Request, paramName string) (uuid.UUID, error) {
	return domain.ParseID(chi.URLParam(r, paramName))
}

// handlePathID parses the path ID or writes a 400 and reports false.
func handlePathID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}

// parseLimit reads a result cap from a query value. It takes the leading
// integer the way a lenient integer parse does ("2abc" is 2) and caps at the
// magnitude of a negative value. Missing, non-numeric and zero values mean
// "no limit".
func parseLimit(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	if n < 0 {
		return -n
	}
	return n
}
