package auth

import "errors"

// Session token errors. The API maps every token error to the same 401
// response; the distinctions exist for logs and metrics.
var (
	// ErrMissingToken means no session cookie accompanied the request.
	ErrMissingToken = errors.New("session token missing")

	// ErrInvalidToken covers malformed tokens, bad signatures and
	// unexpected signing algorithms.
	ErrInvalidToken = errors.New("session token invalid")

	// ErrExpiredToken means the token's exp has passed.
	ErrExpiredToken = errors.New("session token expired")

	// ErrTokenNotYetValid means iat or nbf lies in the future.
	ErrTokenNotYetValid = errors.New("session token not yet valid")

	// ErrMissingEmail is returned by IssueToken for an empty identity.
	ErrMissingEmail = errors.New("session identity email missing")
)
