package allowlist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kingstalent/poster-gateway/allowlist"
	"github.com/kingstalent/poster-gateway/allowlist/repofake"
)

func TestGate_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("member is allowed", func(t *testing.T) {
		repo := repofake.NewFakeAllowlistRepo("a@b.com")
		gate := allowlist.NewGate(repo, time.Second)

		decision := gate.Check(ctx, "a@b.com")
		require.True(t, decision.Allowed)
		require.Equal(t, "a@b.com", decision.Email)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		repo := repofake.NewFakeAllowlistRepo("a@b.com")
		gate := allowlist.NewGate(repo, time.Second)

		decision := gate.Check(ctx, "  A@B.Com ")
		require.True(t, decision.Allowed)
		require.Equal(t, "a@b.com", decision.Email)
		require.Equal(t, []string{"a@b.com"}, repo.Lookups)
	})

	t.Run("non-member is denied", func(t *testing.T) {
		repo := repofake.NewFakeAllowlistRepo("a@b.com")
		gate := allowlist.NewGate(repo, time.Second)

		decision := gate.Check(ctx, "stranger@b.com")
		require.False(t, decision.Allowed)
		require.Equal(t, "stranger@b.com", decision.Email)
	})

	t.Run("empty email denied without lookup", func(t *testing.T) {
		repo := repofake.NewFakeAllowlistRepo("a@b.com")
		gate := allowlist.NewGate(repo, time.Second)

		decision := gate.Check(ctx, "")
		require.False(t, decision.Allowed)
		require.Empty(t, decision.Email)
		require.Empty(t, repo.Lookups)
	})

	t.Run("store error fails closed", func(t *testing.T) {
		repo := repofake.NewFakeAllowlistRepo("a@b.com")
		repo.Err = errors.New("store unreachable")
		gate := allowlist.NewGate(repo, time.Second)

		decision := gate.Check(ctx, "a@b.com")
		require.False(t, decision.Allowed)
		require.Equal(t, "a@b.com", decision.Email)
	})
}

func TestInMemoryRepo(t *testing.T) {
	repo := allowlist.NewInMemoryRepo("A@B.com", " c@d.com ", "")

	ok, err := repo.Lookup(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Lookup(context.Background(), "c@d.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Lookup(context.Background(), "nobody@b.com")
	require.NoError(t, err)
	require.False(t, ok)
}
