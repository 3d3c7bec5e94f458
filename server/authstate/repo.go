package authstate

import "time"

// LoginState holds the transient material for one login round-trip, keyed by
// the random state parameter sent to the identity provider.
type LoginState struct {
	TenantID     string
	CodeVerifier string
	Nonce        string
	Redirect     string // sanitized post-login target
	CallbackURL  string // exact redirect_uri sent to the provider
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, loginState *LoginState) error
	// Consume returns the login state and removes it in one step, so a
	// replayed state (and therefore a replayed authorization code) fails on
	// the second attempt.
	Consume(state string) (*LoginState, error)
}
