// Package session implements the cookie-backed session store. Each tenant owns
// one sealed cookie; token material never crosses tenant cookie namespaces.
package session

import "time"

// Session is the token material held for an authenticated user. It is created
// only by the auth callback and destroyed on denial or logout.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Email        string    `json:"email"`
	Expiry       time.Time `json:"expiry"`
}

// Valid reports whether the session can still be used.
func (s Session) Valid() bool {
	return s.AccessToken != "" && time.Now().Before(s.Expiry)
}
