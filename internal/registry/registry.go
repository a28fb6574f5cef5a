// Package registry owns exhibitor accounts and the admin credential.
// Accounts are referenced by the ledger through their id; the access
// code is the exhibitor login credential.
package registry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/targihasta/fair-lottery/internal/model"
	"github.com/targihasta/fair-lottery/internal/store"
)

// ErrNotFound is returned when an exhibitor id does not exist.
var ErrNotFound = errors.New("exhibitor not found")

// Access code alphabet. I and O are left out so codes stay readable
// when printed on a handout.
const codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// maxCodeAttempts bounds the collision retry loop; the code space is
// ~half a million combinations, so hitting the bound means the
// registry is effectively full.
const maxCodeAttempts = 100

// Registry is the exhibitor account state holder. Safe for concurrent
// use; every mutation persists synchronously.
type Registry struct {
	mu       sync.RWMutex
	accounts []model.ExhibitorAccount
	store    *store.Store
}

func New(st *store.Store, accounts []model.ExhibitorAccount) *Registry {
	if accounts == nil {
		accounts = []model.ExhibitorAccount{}
	}
	return &Registry{accounts: accounts, store: st}
}

// Add creates an exhibitor account with a generated access code of the
// form LL-DDD. Generation retries until the code is unused among the
// current accounts, so codes behave as the unique key lookups assume.
func (r *Registry) Add(ctx context.Context, name string) (model.ExhibitorAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.newCodeLocked()
	if err != nil {
		return model.ExhibitorAccount{}, err
	}
	acct := model.ExhibitorAccount{
		ID:         uuid.NewString(),
		Name:       name,
		AccessCode: code,
	}
	next := append(append([]model.ExhibitorAccount{}, r.accounts...), acct)
	if err := r.store.SaveExhibitors(ctx, next); err != nil {
		return model.ExhibitorAccount{}, fmt.Errorf("persist exhibitors: %w", err)
	}
	r.accounts = next
	return acct, nil
}

func (r *Registry) newCodeLocked() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := fmt.Sprintf("%c%c-%03d",
			codeLetters[rand.Intn(len(codeLetters))],
			codeLetters[rand.Intn(len(codeLetters))],
			100+rand.Intn(900))
		taken := false
		for _, a := range r.accounts {
			if a.AccessCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("access code space exhausted")
}

// Remove deletes the account with the given id.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := []model.ExhibitorAccount{}
	found := false
	for _, a := range r.accounts {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := r.store.SaveExhibitors(ctx, next); err != nil {
		return fmt.Errorf("persist exhibitors: %w", err)
	}
	r.accounts = next
	return nil
}

// List returns a copy of all accounts in creation order.
func (r *Registry) List() []model.ExhibitorAccount {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.ExhibitorAccount{}, r.accounts...)
}

// FindByCode looks an account up by access code. The comparison is a
// case-sensitive exact match; this is the exhibitor login path.
func (r *Registry) FindByCode(code string) (model.ExhibitorAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.AccessCode == code {
			return a, true
		}
	}
	return model.ExhibitorAccount{}, false
}

// FindByID looks an account up by id.
func (r *Registry) FindByID(id string) (model.ExhibitorAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.ExhibitorAccount{}, false
}

// Replace swaps the whole account list, used by backup import.
func (r *Registry) Replace(ctx context.Context, accounts []model.ExhibitorAccount) error {
	if accounts == nil {
		accounts = []model.ExhibitorAccount{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.SaveExhibitors(ctx, accounts); err != nil {
		return fmt.Errorf("persist exhibitors: %w", err)
	}
	r.accounts = append([]model.ExhibitorAccount{}, accounts...)
	return nil
}
