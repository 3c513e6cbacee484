package customer

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rightyway-storefront/models"
	"rightyway-storefront/storage"
)

func newTestDirectory(t *testing.T) (*Directory, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	d, err := Load(context.Background(), store)
	require.NoError(t, err)
	return d, store
}

func profile(email string) models.CustomerProfile {
	return models.CustomerProfile{
		Name:    "Ada Obi",
		Email:   email,
		Phone:   "+2348012345678",
		Address: "12 Adeola Odeku St",
		City:    "Lagos",
		State:   "Lagos",
		Country: "Nigeria",
	}
}

// TestFindByEmail_NormalizesInput verifies lookup is case- and
// whitespace-insensitive: saving " A@B.com " is found via "a@b.com".
func TestFindByEmail_NormalizesInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	require.NoError(t, d.Save(ctx, profile(" A@B.com ")))

	found, ok := d.FindByEmail("a@b.com")
	require.True(t, ok)
	assert.Equal(t, "Ada Obi", found.Name)

	_, ok = d.FindByEmail("  A@b.COM ")
	assert.True(t, ok)
}

// TestFindByEmail_MissIsNotAnError verifies a lookup miss returns
// (zero, false).
func TestFindByEmail_MissIsNotAnError(t *testing.T) {
	t.Parallel()
	d, _ := newTestDirectory(t)

	found, ok := d.FindByEmail("nobody@example.com")
	assert.False(t, ok)
	assert.Zero(t, found)
}

// TestSave_UpsertsInPlace verifies saving twice with the same normalized
// email replaces the record in place, preserving collection order, instead
// of appending a duplicate.
func TestSave_UpsertsInPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	require.NoError(t, d.Save(ctx, profile("first@example.com")))
	require.NoError(t, d.Save(ctx, profile("second@example.com")))

	updated := profile("FIRST@example.com")
	updated.City = "Abuja"
	require.NoError(t, d.Save(ctx, updated))

	records := d.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "first@example.com", records[0].Email)
	assert.Equal(t, "Abuja", records[0].Details.City)
	assert.Equal(t, "second@example.com", records[1].Email)
}

// TestSave_StampsTimestampAndActivates verifies the record carries the save
// time and the profile becomes the active session profile.
func TestSave_StampsTimestampAndActivates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	require.NoError(t, d.Save(ctx, profile("ada@example.com")))

	records := d.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "2026-08-31T12:00:00Z", records[0].LastUpdated)

	active, ok := d.Active()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", NormalizeEmail(active.Email))
}

// TestSave_RejectsEmptyEmail verifies a profile without an email cannot be
// keyed into the directory.
func TestSave_RejectsEmptyEmail(t *testing.T) {
	t.Parallel()
	d, _ := newTestDirectory(t)

	p := profile("   ")
	assert.Error(t, d.Save(context.Background(), p))
	assert.Empty(t, d.Records())
}

// TestClearActive_KeepsDirectory verifies clearing the active profile does
// not touch the persisted records.
func TestClearActive_KeepsDirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	require.NoError(t, d.Save(ctx, profile("ada@example.com")))
	d.ClearActive()

	_, ok := d.Active()
	assert.False(t, ok)
	assert.Len(t, d.Records(), 1)
}

// TestSetActive_DoesNotPersist verifies activating a profile without saving
// leaves the directory untouched.
func TestSetActive_DoesNotPersist(t *testing.T) {
	t.Parallel()
	d, _ := newTestDirectory(t)

	d.SetActive(profile("ada@example.com"))

	active, ok := d.Active()
	require.True(t, ok)
	assert.Equal(t, "Ada Obi", active.Name)
	assert.Empty(t, d.Records())
}

// TestConcurrentSaveAndLookup verifies overlapping requests saving and
// looking up profiles are safe and no save is lost.
func TestConcurrentSaveAndLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d, _ := newTestDirectory(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		email := fmt.Sprintf("user%d@example.com", i)
		go func() {
			defer wg.Done()
			assert.NoError(t, d.Save(ctx, profile(email)))
		}()
		go func() {
			defer wg.Done()
			d.FindByEmail(email)
			d.Active()
			d.Records()
		}()
	}
	wg.Wait()

	assert.Len(t, d.Records(), 50)
}

// TestLoad_RestoresRecords verifies the directory reloads persisted records
// while the active profile stays session-only.
func TestLoad_RestoresRecords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d, store := newTestDirectory(t)

	require.NoError(t, d.Save(ctx, profile("ada@example.com")))

	reloaded, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Len(t, reloaded.Records(), 1)

	_, ok := reloaded.Active()
	assert.False(t, ok)
}
