package auth

import (
	"net/http"
	"time"
)

// CookiePolicy describes how the session cookie is written. Browsers on a
// different site than the API need SameSite=None, which in turn requires
// Secure, so production differs from local development.
type CookiePolicy struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
}

// NewCookiePolicy returns the policy for the given deployment.
func NewCookiePolicy(name string, production bool) CookiePolicy {
	if production {
		return CookiePolicy{Name: name, Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Name: name, Secure: false, SameSite: http.SameSiteStrictMode}
}

// SessionCookie returns the cookie carrying token until expiresAt.
func (p CookiePolicy) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}

// ClearedCookie returns a cookie that makes the browser drop the session.
// Its attributes match SessionCookie so the browser replaces the same entry.
func (p CookiePolicy) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     p.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}
