package repofake

import "context"

// FakeAllowlistRepo is a configurable test double for the allow-list store.
type FakeAllowlistRepo struct {
	Allowed map[string]bool
	Err     error

	// Lookups records every email the gate asked about.
	Lookups []string
}

// NewFakeAllowlistRepo creates a fake repo allowing the given emails.
func NewFakeAllowlistRepo(emails ...string) *FakeAllowlistRepo {
	allowed := make(map[string]bool)
	for _, e := range emails {
		allowed[e] = true
	}
	return &FakeAllowlistRepo{Allowed: allowed}
}

func (f *FakeAllowlistRepo) Lookup(_ context.Context, email string) (bool, error) {
	f.Lookups = append(f.Lookups, email)
	if f.Err != nil {
		return false, f.Err
	}
	return f.Allowed[email], nil
}
