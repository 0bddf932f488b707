package api

// TokenRequest is the identity payload exchanged for a session cookie.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SuccessResponse acknowledges session changes.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// StatusUpdateRequest carries a booking's new status. The value is stored
// verbatim; only its presence is required, so an empty string is allowed.
type StatusUpdateRequest struct {
	ServiceStatus *string `json:"serviceStatus" validate:"required"`
}

// HealthResponse reports liveness and store reachability.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
