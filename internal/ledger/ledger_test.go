package ledger

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/targihasta/fair-lottery/internal/model"
	"github.com/targihasta/fair-lottery/internal/store"
)

func newTestLedger(t *testing.T) (*Ledger, *store.Store) {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	return New(st, nil, func(context.Context) error { return nil }), st
}

var ticketPattern = regexp.MustCompile(`^#(\d{3})-(\d{4})$`)

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("first order gets ticket #001-XXXX", func(t *testing.T) {
		l, _ := newTestLedger(t)
		order, err := l.Append(ctx, "ACME", 500.00, Attribution{})
		require.NoError(t, err)

		m := ticketPattern.FindStringSubmatch(order.TicketNumber)
		require.NotNil(t, m, "ticket %q does not match #NNN-RRRR", order.TicketNumber)
		assert.Equal(t, "001", m[1])
		assert.GreaterOrEqual(t, m[2], "1000")
		assert.LessOrEqual(t, m[2], "9999")
		assert.False(t, order.IsWinner)
		assert.NotEmpty(t, order.ID)
		assert.NotZero(t, order.CreatedAt)
	})

	t.Run("positions increase with the ledger", func(t *testing.T) {
		l, _ := newTestLedger(t)
		for i := 0; i < 12; i++ {
			_, err := l.Append(ctx, "Client", 10, Attribution{})
			require.NoError(t, err)
		}
		orders := l.List()
		assert.Equal(t, "#012-", orders[11].TicketNumber[:5])
	})

	t.Run("attribution is stamped on the order", func(t *testing.T) {
		l, _ := newTestLedger(t)
		order, err := l.Append(ctx, "ACME", 250, Attribution{ExhibitorID: "ex-1", Name: "Stoisko A"})
		require.NoError(t, err)
		assert.Equal(t, "ex-1", order.ExhibitorID)
		assert.Equal(t, "Stoisko A", order.CreatedBy)
	})

	t.Run("append persists write-through", func(t *testing.T) {
		l, st := newTestLedger(t)
		_, err := l.Append(ctx, "ACME", 99.99, Attribution{})
		require.NoError(t, err)

		orders, _, _ := st.LoadAll(ctx)
		require.Len(t, orders, 1)
		assert.Equal(t, "ACME", orders[0].ClientName)
	})
}

func TestAppendValidation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	cases := []struct {
		name       string
		clientName string
		value      float64
	}{
		{"empty client name", "", 10},
		{"negative value", "ACME", -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Append(ctx, tc.clientName, tc.value, Attribution{})
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
	assert.Empty(t, l.List(), "rejected appends must not mutate the ledger")
}

func TestTicketNumbersAreDistinct(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		order, err := l.Append(ctx, "Client", 1, Attribution{})
		require.NoError(t, err)
		require.False(t, seen[order.TicketNumber], "duplicate ticket %s", order.TicketNumber)
		seen[order.TicketNumber] = true
	}
}

func TestMarkWinner(t *testing.T) {
	ctx := context.Background()

	t.Run("marks exactly one order and is idempotent", func(t *testing.T) {
		l, _ := newTestLedger(t)
		a, _ := l.Append(ctx, "A", 1, Attribution{})
		b, _ := l.Append(ctx, "B", 1, Attribution{})

		require.NoError(t, l.MarkWinner(ctx, a.ID))
		require.NoError(t, l.MarkWinner(ctx, a.ID)) // second call is a no-op

		orders := l.List()
		assert.True(t, orders[0].IsWinner)
		assert.False(t, orders[1].IsWinner)
		_ = b
	})

	t.Run("unknown id", func(t *testing.T) {
		l, _ := newTestLedger(t)
		assert.ErrorIs(t, l.MarkWinner(ctx, "missing"), ErrNotFound)
	})
}

func TestEligible(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	for i := 0; i < 3; i++ {
		_, err := l.Append(ctx, "Client", 1, Attribution{})
		require.NoError(t, err)
	}
	winner := l.List()[1]
	require.NoError(t, l.MarkWinner(ctx, winner.ID))

	eligible := l.Eligible()
	require.Len(t, eligible, 2)
	for _, o := range eligible {
		assert.False(t, o.IsWinner)
		assert.NotEqual(t, winner.ID, o.ID)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()

	t.Run("exports a backup before clearing", func(t *testing.T) {
		st := store.New(store.NewMemoryKV())
		backups := 0
		var l *Ledger
		l = New(st, nil, func(context.Context) error {
			backups++
			// The snapshot must still see the orders about to be cleared.
			assert.NotEmpty(t, l.List())
			return nil
		})
		_, err := l.Append(ctx, "ACME", 1, Attribution{})
		require.NoError(t, err)

		require.NoError(t, l.Clear(ctx))
		assert.Equal(t, 1, backups)
		assert.Empty(t, l.List())

		orders, _, _ := st.LoadAll(ctx)
		assert.Empty(t, orders)
	})

	t.Run("refused without a backup exporter", func(t *testing.T) {
		st := store.New(store.NewMemoryKV())
		l := New(st, nil, nil)
		_, err := l.Append(ctx, "ACME", 1, Attribution{})
		require.NoError(t, err)
		assert.Error(t, l.Clear(ctx))
		assert.NotEmpty(t, l.List())
	})

	t.Run("sequence restarts after clear", func(t *testing.T) {
		l, _ := newTestLedger(t)
		for i := 0; i < 5; i++ {
			_, err := l.Append(ctx, "Client", 1, Attribution{})
			require.NoError(t, err)
		}
		require.NoError(t, l.Clear(ctx))
		order, err := l.Append(ctx, "Client", 1, Attribution{})
		require.NoError(t, err)
		assert.Equal(t, "#001-", order.TicketNumber[:5])
	})
}

func TestListByExhibitor(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	_, err := l.Append(ctx, "A", 1, Attribution{ExhibitorID: "ex-1", Name: "One"})
	require.NoError(t, err)
	_, err = l.Append(ctx, "B", 1, Attribution{ExhibitorID: "ex-2", Name: "Two"})
	require.NoError(t, err)
	_, err = l.Append(ctx, "C", 1, Attribution{ExhibitorID: "ex-1", Name: "One"})
	require.NoError(t, err)

	mine := l.ListByExhibitor("ex-1")
	require.Len(t, mine, 2)
	assert.Equal(t, "A", mine[0].ClientName)
	assert.Equal(t, "C", mine[1].ClientName)
}

func TestEligibleFilterIsPure(t *testing.T) {
	orders := []model.Order{
		{ID: "1", IsWinner: false},
		{ID: "2", IsWinner: true},
		{ID: "3", IsWinner: false},
	}
	got := Eligible(orders)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	// input untouched
	assert.True(t, orders[1].IsWinner)
	assert.Len(t, orders, 3)
}
