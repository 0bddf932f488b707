package testdb

import (
	"os"
	"strings"
)

// Environment variables consulted by this package.
const (
	// EnvTestDatabaseURL names the database integration tests may wipe.
	EnvTestDatabaseURL = "SERVICEHUB_TEST_DATABASE_URL"

	// EnvDatabaseURL is accepted as a fallback in CI containers that only
	// export the standard name.
	EnvDatabaseURL = "DATABASE_URL"
)

// ciMarkers are set by the common CI providers.
var ciMarkers = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI", "BUILDKITE"}

// IsCI reports whether the process runs under a CI provider.
func IsCI() bool {
	for _, name := range ciMarkers {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" && !strings.EqualFold(v, "false") {
			return true
		}
	}
	return false
}

// DatabaseURL returns the configured test database URL. The generic
// DATABASE_URL is honoured only in CI so a developer's real database is
// never truncated by a local test run.
func DatabaseURL() string {
	if url := strings.TrimSpace(os.Getenv(EnvTestDatabaseURL)); url != "" {
		return url
	}
	if IsCI() {
		return strings.TrimSpace(os.Getenv(EnvDatabaseURL))
	}
	return ""
}
