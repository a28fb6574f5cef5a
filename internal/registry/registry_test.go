package registry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targihasta/fair-lottery/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	return New(st, nil), st
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("generates LL-DDD access codes", func(t *testing.T) {
		r, _ := newTestRegistry(t)
		acct, err := r.Add(ctx, "Stoisko A")
		require.NoError(t, err)
		assert.NotEmpty(t, acct.ID)
		assert.Equal(t, "Stoisko A", acct.Name)
		assert.Regexp(t, `^[A-HJ-NP-Z]{2}-[1-9]\d{2}$`, acct.AccessCode)
		assert.NotContains(t, acct.AccessCode, "I")
		assert.NotContains(t, acct.AccessCode, "O")
	})

	t.Run("codes are unique across accounts", func(t *testing.T) {
		r, _ := newTestRegistry(t)
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			acct, err := r.Add(ctx, "Exhibitor")
			require.NoError(t, err)
			require.False(t, seen[acct.AccessCode], "duplicate code %s", acct.AccessCode)
			seen[acct.AccessCode] = true
		}
	})

	t.Run("persists write-through", func(t *testing.T) {
		r, st := newTestRegistry(t)
		_, err := r.Add(ctx, "Stoisko B")
		require.NoError(t, err)
		_, exhibitors, _ := st.LoadAll(ctx)
		require.Len(t, exhibitors, 1)
		assert.Equal(t, "Stoisko B", exhibitors[0].Name)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	r, st := newTestRegistry(t)
	a, err := r.Add(ctx, "A")
	require.NoError(t, err)
	_, err = r.Add(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, r.Remove(ctx, a.ID))
	assert.Len(t, r.List(), 1)
	assert.ErrorIs(t, r.Remove(ctx, a.ID), ErrNotFound)

	_, exhibitors, _ := st.LoadAll(ctx)
	assert.Len(t, exhibitors, 1)
}

func TestFindByCode(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)
	acct, err := r.Add(ctx, "Stoisko A")
	require.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		got, ok := r.FindByCode(acct.AccessCode)
		require.True(t, ok)
		assert.Equal(t, acct.ID, got.ID)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, ok := r.FindByCode(strings.ToLower(acct.AccessCode))
		assert.False(t, ok)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ok := r.FindByCode("ZZ-999")
		assert.False(t, ok)
	})
}

func TestCredential(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemoryKV())

	t.Run("defaults when no prior state", func(t *testing.T) {
		c := NewCredential(st, "")
		assert.Equal(t, store.DefaultAdminPassword, c.Current())
	})

	t.Run("change persists", func(t *testing.T) {
		c := NewCredential(st, "admin123")
		require.NoError(t, c.Change(ctx, "nowe-haslo"))
		assert.Equal(t, "nowe-haslo", c.Current())

		_, _, pass := st.LoadAll(ctx)
		assert.Equal(t, "nowe-haslo", pass)
	})
}
