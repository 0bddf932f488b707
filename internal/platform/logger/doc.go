// Package logger sets up the process-wide JSON slog logger and moves
// request-scoped loggers through context.Context. The trace middleware
// stores a logger tagged with trace_id; handlers and stores fetch it with
// FromContext so every line for one request can be correlated.
package logger
