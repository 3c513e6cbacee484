package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// TestRedisStore_RoundTrip verifies Put/Get round-trips a JSON value.
func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	in := []string{"a", "b"}
	require.NoError(t, s.Put(ctx, KeyCartItems, in))

	var out []string
	require.NoError(t, s.Get(ctx, KeyCartItems, &out))
	assert.Equal(t, in, out)
}

// TestRedisStore_MissingKey verifies a never-written key yields ErrNotFound.
func TestRedisStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	var out string
	assert.ErrorIs(t, s.Get(ctx, "missing", &out), ErrNotFound)
}

// TestRedisStore_Delete verifies Delete removes the key.
func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	require.NoError(t, s.Put(ctx, "k", 42))
	require.NoError(t, s.Delete(ctx, "k"))

	var out int
	assert.ErrorIs(t, s.Get(ctx, "k", &out), ErrNotFound)
}

// TestRedisStore_InvalidURL verifies a malformed URL fails fast.
func TestRedisStore_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisStore("not-a-url")
	assert.Error(t, err)
}
