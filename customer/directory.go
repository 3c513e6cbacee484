// Package customer keeps the directory of known customer profiles, keyed by
// normalized email, plus the single active profile for the session.
//
// The directory is persisted; the active profile is session-only state and
// is lost on restart, matching the distinction between saved customers and
// the profile currently loaded into the checkout form.
package customer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"rightyway-storefront/models"
	"rightyway-storefront/storage"
)

// Directory holds the persisted saved-customer records and the active
// session profile. Handlers run on separate goroutines, so all access goes
// through mu.
type Directory struct {
	store storage.Store
	now   func() time.Time

	mu      sync.Mutex
	records []models.SavedCustomerRecord
	active  *models.CustomerProfile
}

// Load builds a directory bound to the store, reloading persisted records.
func Load(ctx context.Context, store storage.Store) (*Directory, error) {
	d := &Directory{
		store:   store,
		records: []models.SavedCustomerRecord{},
		now:     time.Now,
	}

	if err := store.Get(ctx, storage.KeySavedCustomers, &d.records); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to load saved customers: %w", err)
		}
		d.records = []models.SavedCustomerRecord{}
	}

	log.Printf("👤 Customer directory loaded: %d saved customers", len(d.records))
	return d, nil
}

// NormalizeEmail trims and lowercases an email for use as a directory key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail looks up a saved profile by normalized email. A miss is a
// normal outcome and returns (zero, false), never an error.
func (d *Directory) FindByEmail(email string) (models.CustomerProfile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	normalized := NormalizeEmail(email)
	for _, rec := range d.records {
		if rec.Email == normalized {
			return rec.Details, true
		}
	}
	return models.CustomerProfile{}, false
}

// Save upserts the profile into the directory under its normalized email,
// replacing an existing record in place so collection order is preserved.
// The record's timestamp is set to the current time and the profile becomes
// the active session profile.
func (d *Directory) Save(ctx context.Context, profile models.CustomerProfile) error {
	normalized := NormalizeEmail(profile.Email)
	if normalized == "" {
		return fmt.Errorf("email cannot be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	record := models.SavedCustomerRecord{
		Email:       normalized,
		Details:     profile,
		LastUpdated: d.now().UTC().Format(time.RFC3339),
	}

	replaced := false
	for i := range d.records {
		if d.records[i].Email == normalized {
			d.records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		d.records = append(d.records, record)
	}

	if err := d.store.Put(ctx, storage.KeySavedCustomers, d.records); err != nil {
		return fmt.Errorf("failed to persist saved customers: %w", err)
	}

	d.active = &profile
	log.Printf("✅ Customer saved: %s (replaced=%v, directory size=%d)", normalized, replaced, len(d.records))
	return nil
}

// Active returns the active session profile, if any.
func (d *Directory) Active() (models.CustomerProfile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active == nil {
		return models.CustomerProfile{}, false
	}
	return *d.active, true
}

// SetActive loads a profile into the session without saving it to the
// directory. Used when a looked-up customer confirms their existing details.
func (d *Directory) SetActive(profile models.CustomerProfile) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.active = &profile
}

// ClearActive forgets the active session profile without touching the
// persisted directory. Used when a customer declines a found match and
// starts fresh.
func (d *Directory) ClearActive() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.active = nil
}

// Records returns a copy of the persisted records in insertion order.
func (d *Directory) Records() []models.SavedCustomerRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]models.SavedCustomerRecord, len(d.records))
	copy(out, d.records)
	return out
}
