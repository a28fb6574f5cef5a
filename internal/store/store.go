// Package store is the persistence gateway. It owns the three durable
// record slots (orders, exhibitor accounts, admin credential), each a
// JSON value behind a key-value backend, and the portable backup
// document used for export/import. Every write is a synchronous full
// overwrite of its slot; there are no partial or batched writes, so
// the in-memory model and the durable store never diverge outside a
// single pending operation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/targihasta/fair-lottery/internal/model"
)

// Record slot keys. Absence of a slot is a valid initial state.
const (
	keyOrders     = "fairlottery:orders"
	keyExhibitors = "fairlottery:exhibitors"
	keyAdminPass  = "fairlottery:admin_pass"
)

// DefaultAdminPassword seeds the credential slot when no prior state exists.
const DefaultAdminPassword = "admin123"

// ErrNoRecord is returned by a KV backend when a slot has never been
// written. The gateway translates it into empty/default values.
var ErrNoRecord = errors.New("no record")

// ErrInvalidBackup is returned by ImportSnapshot when the document
// fails tag or shape validation. No state is touched in that case.
var ErrInvalidBackup = errors.New("invalid backup document")

// Store reads and writes the three record slots through a KV backend.
type Store struct {
	kv KV
}

func New(kv KV) *Store { return &Store{kv: kv} }

// LoadAll reads all three slots. A missing or unparseable record is
// substituted with its empty/default value; startup never fails on
// bad durable state.
func (s *Store) LoadAll(ctx context.Context) (orders []model.Order, exhibitors []model.ExhibitorAccount, adminPass string) {
	orders = []model.Order{}
	exhibitors = []model.ExhibitorAccount{}
	adminPass = DefaultAdminPassword

	if raw, err := s.kv.Get(ctx, keyOrders); err == nil {
		var v []model.Order
		if json.Unmarshal([]byte(raw), &v) == nil {
			orders = v
		}
	}
	if raw, err := s.kv.Get(ctx, keyExhibitors); err == nil {
		var v []model.ExhibitorAccount
		if json.Unmarshal([]byte(raw), &v) == nil {
			exhibitors = v
		}
	}
	if raw, err := s.kv.Get(ctx, keyAdminPass); err == nil && raw != "" {
		adminPass = raw
	}
	return orders, exhibitors, adminPass
}

// SaveOrders overwrites the orders slot.
func (s *Store) SaveOrders(ctx context.Context, orders []model.Order) error {
	b, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	return s.kv.Set(ctx, keyOrders, string(b))
}

// SaveExhibitors overwrites the exhibitors slot.
func (s *Store) SaveExhibitors(ctx context.Context, exhibitors []model.ExhibitorAccount) error {
	b, err := json.Marshal(exhibitors)
	if err != nil {
		return fmt.Errorf("marshal exhibitors: %w", err)
	}
	return s.kv.Set(ctx, keyExhibitors, string(b))
}

// SaveCredential overwrites the admin credential slot.
func (s *Store) SaveCredential(ctx context.Context, secret string) error {
	return s.kv.Set(ctx, keyAdminPass, secret)
}
