package allowlist

import (
	"context"
	"strings"
	"sync"
)

// InMemoryRepo is a thread-safe in-memory allow-list, used for development
// deployments seeded from the environment.
type InMemoryRepo struct {
	mu     sync.RWMutex
	emails map[string]struct{}
}

// NewInMemoryRepo creates an in-memory allow-list from the given addresses.
func NewInMemoryRepo(emails ...string) *InMemoryRepo {
	r := &InMemoryRepo{emails: make(map[string]struct{})}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			r.emails[e] = struct{}{}
		}
	}
	return r
}

// Lookup reports whether email is in the allow-list.
func (r *InMemoryRepo) Lookup(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.emails[strings.ToLower(email)]
	return ok, nil
}
