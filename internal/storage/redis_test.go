package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return s, client
}

func TestRedisAdapter(t *testing.T) {
	s, client := newTestRedis(t)
	adapter := NewRedisAdapter(client, "cancha")
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "reservations", []byte(`[{"id":"r1"}]`)))

		got, err := adapter.Get(ctx, "reservations")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":"r1"}]`), got)
	})

	t.Run("KeysArePrefixed", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "favorites", []byte(`[]`)))
		assert.True(t, s.Exists("cancha:favorites"))
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		_, err := adapter.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("NoExpiry", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "persistent", []byte("v")))
		assert.Zero(t, s.TTL("cancha:persistent"))
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, adapter.Set(ctx, "gone", []byte("v")))
		require.NoError(t, adapter.Remove(ctx, "gone"))

		_, err := adapter.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("EmptyPrefixUsesKeyVerbatim", func(t *testing.T) {
		bare := NewRedisAdapter(client, "")
		require.NoError(t, bare.Set(ctx, "raw", []byte("v")))
		assert.True(t, s.Exists("raw"))
	})

	t.Run("NilClient", func(t *testing.T) {
		nilAdapter := NewRedisAdapter(nil, "cancha")
		_, err := nilAdapter.Get(ctx, "k")
		assert.Error(t, err)
		assert.Error(t, nilAdapter.Set(ctx, "k", []byte("v")))
		assert.Error(t, nilAdapter.Remove(ctx, "k"))
	})
}

func TestRedisAdapterServerDown(t *testing.T) {
	s, client := newTestRedis(t)
	adapter := NewRedisAdapter(client, "cancha")
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v")))
	s.Close()

	_, err := adapter.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
