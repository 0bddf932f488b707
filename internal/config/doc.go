// Package config loads server settings. Values come from built-in defaults,
// an optional config.yaml, a local .env file and the environment, in
// increasing order of precedence. Environment names use the SERVICEHUB_
// prefix; a few unprefixed names from earlier deployments (PORT,
// DATABASE_URL, ACCESS_TOKEN_SECRET) are still honoured.
package config
