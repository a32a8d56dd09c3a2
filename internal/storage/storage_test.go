package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medify/storefront/internal/storage"
)

func stores(t *testing.T) map[string]storage.Store {
	t.Helper()

	bolt, err := storage.OpenBolt(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]storage.Store{
		"memory": storage.NewMemoryStore(),
		"bolt":   bolt,
	}
}

func TestStore_Roundtrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "cart")
			require.NoError(t, err)
			assert.False(t, ok, "missing key reads as absent")

			require.NoError(t, store.Put(ctx, "cart", []byte(`[{"quantity":1}]`)))

			raw, ok, err := store.Get(ctx, "cart")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `[{"quantity":1}]`, string(raw))

			require.NoError(t, store.Delete(ctx, "cart"))
			_, ok, err = store.Get(ctx, "cart")
			require.NoError(t, err)
			assert.False(t, ok)

			// Deleting an absent key is not an error.
			assert.NoError(t, store.Delete(ctx, "cart"))
		})
	}
}

func TestStore_Keys(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "pharmacy2_order_ORD-1", []byte("{}")))
			require.NoError(t, store.Put(ctx, "pharmacy2_order_ORD-2", []byte("{}")))
			require.NoError(t, store.Put(ctx, "pharmacy2_cart", []byte("[]")))

			keys, err := store.Keys(ctx, "pharmacy2_order_")
			require.NoError(t, err)
			assert.Equal(t, []string{"pharmacy2_order_ORD-1", "pharmacy2_order_ORD-2"}, keys)
		})
	}
}

func TestStore_EmptyKeyRejected(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.Get(ctx, "")
			assert.ErrorIs(t, err, storage.ErrKeyRequired)
			assert.ErrorIs(t, store.Put(ctx, "", nil), storage.ErrKeyRequired)
			assert.ErrorIs(t, store.Delete(ctx, ""), storage.ErrKeyRequired)
		})
	}
}

func TestDecodeInto(t *testing.T) {
	type payload struct {
		Quantity int `json:"quantity"`
	}

	tests := []struct {
		name string
		raw  []byte
		ok   bool
	}{
		{"valid", []byte(`{"quantity":2}`), true},
		{"empty", nil, false},
		{"not_json", []byte("not json"), false},
		{"truncated", []byte(`{"quantity":`), false},
		{"wrong_shape", []byte(`{"quantity":"two"}`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			assert.Equal(t, tt.ok, storage.DecodeInto(tt.raw, &p))
		})
	}
}
