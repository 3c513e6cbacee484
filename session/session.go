// Package session manages the per-installation cart reference token and the
// cookie-consent flag.
//
// The reference is a cosmetic correlation id only: it appears in checkout
// messages so a human can match a WhatsApp conversation to a cart, and is
// never validated against any order record.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"rightyway-storefront/storage"
)

// Manager owns the session reference and consent state. The reference is
// immutable after Load; the consent flag is guarded against concurrent
// request handlers.
type Manager struct {
	store storage.Store
	ref   string

	mu      sync.Mutex
	consent bool
}

// Load builds a manager bound to the store, generating and persisting a new
// reference token on first run.
func Load(ctx context.Context, store storage.Store) (*Manager, error) {
	m := &Manager{store: store}

	if err := store.Get(ctx, storage.KeySessionRef, &m.ref); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load session reference: %w", err)
		}
		m.ref = "cart_" + uuid.New().String()
		if err := store.Put(ctx, storage.KeySessionRef, m.ref); err != nil {
			return nil, fmt.Errorf("failed to persist session reference: %w", err)
		}
		log.Printf("🆕 Session reference generated: %s", m.ref)
	}

	if err := store.Get(ctx, storage.KeyCookieConsent, &m.consent); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load cookie consent: %w", err)
		}
	}

	return m, nil
}

// Ref returns the session reference token.
func (m *Manager) Ref() string {
	return m.ref
}

// CookieConsent reports whether consent has been recorded.
func (m *Manager) CookieConsent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.consent
}

// SetCookieConsent records and persists the consent decision.
func (m *Manager) SetCookieConsent(ctx context.Context, accepted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consent = accepted
	if err := m.store.Put(ctx, storage.KeyCookieConsent, accepted); err != nil {
		return fmt.Errorf("failed to persist cookie consent: %w", err)
	}
	return nil
}
