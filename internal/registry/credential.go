package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/targihasta/fair-lottery/internal/store"
)

// SuperuserPassword is the fixed second-tier admin secret. It is a
// constant by design: never stored, never rotated, checked alongside
// the regular credential at login.
const SuperuserPassword = "root.hasta"

// Credential holds the single mutable admin secret. Login compares it
// by exact string equality; changes persist synchronously.
type Credential struct {
	mu     sync.RWMutex
	secret string
	store  *store.Store
}

func NewCredential(st *store.Store, secret string) *Credential {
	if secret == "" {
		secret = store.DefaultAdminPassword
	}
	return &Credential{secret: secret, store: st}
}

// Current returns the stored admin secret.
func (c *Credential) Current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.secret
}

// Change replaces the admin secret and persists it.
func (c *Credential) Change(ctx context.Context, secret string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.SaveCredential(ctx, secret); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	c.secret = secret
	return nil
}
