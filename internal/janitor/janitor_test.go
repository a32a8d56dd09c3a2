package janitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medify/storefront/internal/storage"
)

func TestPurgeDemoCarts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "pharmacy2_cart", []byte("[]")))
	require.NoError(t, store.Put(ctx, "pharmacy2_cart_demo", []byte("[]")))
	require.NoError(t, store.Put(ctx, "pharmacy1_cart_demo", []byte("[]")))
	require.NoError(t, store.Put(ctx, "pharmacy2_order_ORD-1", []byte("{}")))

	j := New(store, "0 3 * * *")
	j.purgeDemoCarts()

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"pharmacy2_cart", "pharmacy2_order_ORD-1"}, keys)
}

func TestStart_InvalidSchedule(t *testing.T) {
	j := New(storage.NewMemoryStore(), "not a schedule")
	assert.Error(t, j.Start())
}
