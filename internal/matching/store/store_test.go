package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycloudcondo/kuyan/internal/database"
	"github.com/mycloudcondo/kuyan/internal/matching/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New("sqlite", filepath.Join(t.TempDir(), "kuyan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())

	return store.New(db)
}

func TestStore_FindMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMapping(ctx, "td chequing", "TD Chequing"))
	require.NoError(t, s.CreateMapping(ctx, "wealthsimple", "Wealthsimple TFSA"))

	got, err := s.FindMatch(ctx, "TD CHEQUING 0334-5678")
	require.NoError(t, err)
	assert.Equal(t, "TD Chequing", got)
}

func TestStore_FindMatch_NoMatch(t *testing.T) {
	s := newTestStore(t)

	got, err := s.FindMatch(context.Background(), "Unknown Account")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_FindMatch_MetacharactersAreLiteral(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Patterns containing % or _ match only their literal text, never as
	// wildcards.
	require.NoError(t, s.CreateMapping(ctx, "chase%", "Chase Savings"))
	require.NoError(t, s.CreateMapping(ctx, "td_chequing", "TD Chequing"))

	got, err := s.FindMatch(ctx, "CHASE SAVINGS 0334")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.FindMatch(ctx, "TD CHEQUING")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.FindMatch(ctx, "acct td_chequing 0334")
	require.NoError(t, err)
	assert.Equal(t, "TD Chequing", got)
}

func TestStore_FindMatch_LongestPatternWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMapping(ctx, "visa", "Visa Card"))
	require.NoError(t, s.CreateMapping(ctx, "visa infinite", "Visa Infinite"))

	got, err := s.FindMatch(ctx, "VISA INFINITE PRIVILEGE")
	require.NoError(t, err)
	assert.Equal(t, "Visa Infinite", got)
}
