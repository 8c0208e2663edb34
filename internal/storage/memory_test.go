package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter(t *testing.T) {
	m := NewMemoryAdapter()
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "reservations", []byte(`[]`)))

		got, err := m.Get(ctx, "reservations")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})

	t.Run("GetMissingKey", func(t *testing.T) {
		_, err := m.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "k", []byte("one")))
		require.NoError(t, m.Set(ctx, "k", []byte("two")))

		got, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), got)
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "blob", []byte("abc")))

		got, err := m.Get(ctx, "blob")
		require.NoError(t, err)
		got[0] = 'x'

		again, err := m.Get(ctx, "blob")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "gone", []byte("v")))
		require.NoError(t, m.Remove(ctx, "gone"))

		_, err := m.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("RemoveMissingKeyIsNoop", func(t *testing.T) {
		assert.NoError(t, m.Remove(ctx, "never-set"))
	})
}
