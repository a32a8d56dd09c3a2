package order

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/storage"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderExists   = errors.New("order with this number already exists")
)

type Repository interface {
	Save(ctx context.Context, o *Order) error
	GetByNumber(ctx context.Context, template, number string) (*Order, error)
	ListByTemplate(ctx context.Context, template string) ([]Order, error)
}

type kvRepository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

// Key returns the storage key an order persists under, e.g.
// "pharmacy2_order_ORD2-1948872166410678272".
func Key(template, number string) string {
	return fmt.Sprintf("%s_order_%s", template, number)
}

func (r *kvRepository) Save(ctx context.Context, o *Order) error {
	key := Key(o.Template, o.OrderNumber)

	// Orders are immutable once placed; refuse to overwrite.
	_, exists, err := r.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("repository: failed to check order %s: %w", o.OrderNumber, err)
	}
	if exists {
		return ErrOrderExists
	}

	raw, err := storage.Marshal(o)
	if err != nil {
		return fmt.Errorf("repository: failed to encode order %s: %w", o.OrderNumber, err)
	}
	if err := r.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("repository: failed to persist order %s: %w", o.OrderNumber, err)
	}

	return nil
}

func (r *kvRepository) GetByNumber(ctx context.Context, template, number string) (*Order, error) {
	raw, ok, err := r.store.Get(ctx, Key(template, number))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to read order %s: %w", number, err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	var o Order
	if !storage.DecodeInto(raw, &o) {
		log.Warn().Str("order_number", number).Msg("repository: corrupt persisted order")
		return nil, ErrOrderNotFound
	}

	return &o, nil
}

func (r *kvRepository) ListByTemplate(ctx context.Context, template string) ([]Order, error) {
	keys, err := r.store.Keys(ctx, Key(template, ""))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list orders for %s: %w", template, err)
	}

	orders := make([]Order, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to read order at %s: %w", key, err)
		}
		if !ok {
			continue
		}

		var o Order
		if !storage.DecodeInto(raw, &o) {
			log.Warn().Str("order_key", key).Msg("repository: skipping corrupt persisted order")
			continue
		}
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})

	return orders, nil
}
