// Package auth issues and verifies the signed session tokens that carry a
// caller's email identity, and defines how those tokens travel in cookies.
package auth
