// Package allowlist gates authenticated sessions behind the closed set of
// permitted email addresses.
package allowlist

import "context"

// Repo looks email addresses up in the allow-list backing store. Lookup errors
// are the store's problem; the Gate turns them into denials.
type Repo interface {
	Lookup(ctx context.Context, email string) (bool, error)
}
