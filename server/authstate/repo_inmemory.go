package authstate

import (
	"errors"
	"sync"
	"time"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[string]*LoginState
}

// NewInMemoryRepo creates a new in-memory login state repository. States older
// than ttl are treated as expired on consumption.
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		ttl:    ttl,
		states: make(map[string]*LoginState),
	}
}

// Upsert stores or updates a login state
func (r *InMemoryRepo) Upsert(state string, loginState *LoginState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if loginState == nil {
		return errors.New("loginState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *loginState
	r.states[state] = &cp

	// Opportunistic sweep keeps the map from growing with abandoned logins.
	for k, v := range r.states {
		if time.Since(v.CreatedAt) > r.ttl {
			delete(r.states, k)
		}
	}

	return nil
}

// Consume retrieves and deletes a login state in one step
func (r *InMemoryRepo) Consume(state string) (*LoginState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	loginState, exists := r.states[state]
	if !exists {
		return nil, errors.New("state not found")
	}
	delete(r.states, state)

	if time.Since(loginState.CreatedAt) > r.ttl {
		return nil, errors.New("state expired")
	}

	cp := *loginState
	return &cp, nil
}
