// Package ledger owns the append-only order list. It assigns ticket
// numbers, flips the winner flag and is the only writer of the orders
// record slot; every mutation persists synchronously before returning.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/targihasta/fair-lottery/internal/model"
	"github.com/targihasta/fair-lottery/internal/store"
)

var (
	// ErrInvalidOrder rejects an append with an empty client name or a
	// negative / non-finite order value.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrNotFound is returned when an order id does not exist.
	ErrNotFound = errors.New("order not found")
)

// BackupFunc exports a full snapshot of the system state. Clear calls
// it before destroying the ledger; the hook is injected at startup so
// the ledger does not need to see the registry or credential.
type BackupFunc func(ctx context.Context) error

// Attribution links an order to the exhibitor who registered it.
// Admin-entered orders carry a zero Attribution.
type Attribution struct {
	ExhibitorID string
	Name        string
}

// Ledger is the order state holder. It is safe for concurrent use.
type Ledger struct {
	mu     sync.RWMutex
	orders []model.Order
	store  *store.Store
	backup BackupFunc
}

// New builds a ledger over the orders loaded at startup. backup may be
// nil, in which case Clear refuses to run (the safety export is
// mandatory, not optional).
func New(st *store.Store, orders []model.Order, backup BackupFunc) *Ledger {
	if orders == nil {
		orders = []model.Order{}
	}
	return &Ledger{orders: orders, store: st, backup: backup}
}

// Append validates the input, constructs a new order with a fresh
// ticket number and persists the extended list. The ticket is
// #NNN-RRRR: NNN is the 1-based position of the order in the ledger
// zero-padded to three digits, RRRR a uniform random value in
// [1000, 9999]. The position label restarts at 1 after a bulk clear.
func (l *Ledger) Append(ctx context.Context, clientName string, orderValue float64, attr Attribution) (model.Order, error) {
	if clientName == "" {
		return model.Order{}, fmt.Errorf("%w: client name required", ErrInvalidOrder)
	}
	if orderValue < 0 || math.IsNaN(orderValue) || math.IsInf(orderValue, 0) {
		return model.Order{}, fmt.Errorf("%w: order value must be a non-negative number", ErrInvalidOrder)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	suffix := 1000 + rand.Intn(9000)
	order := model.Order{
		ID:           uuid.NewString(),
		ClientName:   clientName,
		OrderValue:   orderValue,
		TicketNumber: fmt.Sprintf("#%03d-%04d", len(l.orders)+1, suffix),
		CreatedAt:    time.Now().UnixMilli(),
		IsWinner:     false,
		CreatedBy:    attr.Name,
		ExhibitorID:  attr.ExhibitorID,
	}

	next := append(append([]model.Order{}, l.orders...), order)
	if err := l.store.SaveOrders(ctx, next); err != nil {
		return model.Order{}, fmt.Errorf("persist orders: %w", err)
	}
	l.orders = next
	return order, nil
}

// MarkWinner flips the winner flag of exactly one order. The
// transition is monotonic: a second call on the same id is a no-op,
// and the flag is never cleared again.
func (l *Ledger) MarkWinner(ctx context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if l.orders[idx].IsWinner {
		return nil
	}

	next := append([]model.Order{}, l.orders...)
	next[idx].IsWinner = true
	if err := l.store.SaveOrders(ctx, next); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	l.orders = next
	return nil
}

// Clear removes all orders irreversibly. The automatic backup export
// runs first and a failure there aborts the clear; this is the
// recovery path for an accidental wipe.
func (l *Ledger) Clear(ctx context.Context) error {
	if l.backup == nil {
		return errors.New("clear refused: no backup exporter configured")
	}
	if err := l.backup(ctx); err != nil {
		return fmt.Errorf("pre-clear backup: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	empty := []model.Order{}
	if err := l.store.SaveOrders(ctx, empty); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	l.orders = empty
	return nil
}

// List returns a copy of the full ledger in insertion order.
func (l *Ledger) List() []model.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]model.Order{}, l.orders...)
}

// ListByExhibitor returns only the orders registered by the given
// exhibitor, in insertion order. Exhibitors see their own orders only.
func (l *Ledger) ListByExhibitor(exhibitorID string) []model.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []model.Order{}
	for _, o := range l.orders {
		if o.ExhibitorID == exhibitorID {
			out = append(out, o)
		}
	}
	return out
}

// Eligible returns the current drawing candidates: every order whose
// winner flag is still false.
func (l *Ledger) Eligible() []model.Order {
	return Eligible(l.List())
}

// Replace swaps the whole ledger content, used by backup import. The
// new list is persisted before the in-memory state changes.
func (l *Ledger) Replace(ctx context.Context, orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.SaveOrders(ctx, orders); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	l.orders = append([]model.Order{}, orders...)
	return nil
}

// Eligible is the pure eligibility filter: the subsequence of orders
// with IsWinner == false, order preserved, no side effects.
func Eligible(orders []model.Order) []model.Order {
	out := []model.Order{}
	for _, o := range orders {
		if !o.IsWinner {
			out = append(out, o)
		}
	}
	return out
}
