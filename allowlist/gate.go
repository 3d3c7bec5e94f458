package allowlist

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Decision is the outcome of an allow-list check. Email carries the address
// that was actually checked so callers can build a denial message without
// re-deriving it.
type Decision struct {
	Allowed bool
	Email   string
}

// Gate checks authenticated identities against the allow-list store.
type Gate struct {
	repo    Repo
	timeout time.Duration
}

// NewGate creates a gate over the given store with a bounded lookup timeout.
func NewGate(repo Repo, timeout time.Duration) *Gate {
	return &Gate{repo: repo, timeout: timeout}
}

// Check resolves allow-list membership for email. The lookup is
// case-insensitive. An empty email, a store error or a timeout all deny:
// the gate fails closed, never open.
func (g *Gate) Check(ctx context.Context, email string) Decision {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Decision{Allowed: false, Email: ""}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	allowed, err := g.repo.Lookup(ctx, email)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("allow-list lookup failed, denying")
		return Decision{Allowed: false, Email: email}
	}

	return Decision{Allowed: allowed, Email: email}
}
