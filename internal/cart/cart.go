// Package cart maintains a storefront's shopping cart and keeps it
// synchronized with the persistence adapter. Every mutation writes
// through immediately; an empty cart is stored as the absence of its
// key, never as an empty array.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/catalog"
	"github.com/medify/storefront/internal/storage"
)

var ErrScopeRequired = errors.New("cart: scope key must not be empty")

// Item pairs a product snapshot, taken at add time, with a positive
// quantity. Items never persist with quantity 0 — they are removed
// instead.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store is the canonical cart for one scope key. Demo and live sessions
// get distinct scope keys (e.g. "pharmacy2_cart_demo" vs
// "pharmacy2_cart") so they never share state.
type Store struct {
	mu    sync.Mutex
	store storage.Store
	key   string
	items []Item
}

func NewStore(store storage.Store, scopeKey string) (*Store, error) {
	if scopeKey == "" {
		return nil, ErrScopeRequired
	}
	return &Store{store: store, key: scopeKey}, nil
}

// Load reads the persisted cart. A missing key and a corrupt value both
// yield an empty cart; decode failures are absorbed here and never
// surface to the user.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("cart: failed to load cart %s: %w", s.key, err)
	}

	var items []Item
	if ok && !storage.DecodeInto(raw, &items) {
		log.Warn().Str("cart_key", s.key).Msg("cart: discarding corrupt persisted cart")
		items = nil
	}

	// Zero-quantity entries should not exist in storage; drop any that
	// slipped in from an older writer.
	s.items = s.items[:0]
	for _, item := range items {
		if item.Quantity >= 1 {
			s.items = append(s.items, item)
		}
	}

	return nil
}

// Add puts one unit of product in the cart. Out-of-stock products are
// silently ignored; a product already present has its quantity
// incremented instead of gaining a second entry.
func (s *Store) Add(ctx context.Context, product catalog.Product) error {
	if !product.InStock {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, Item{Product: product, Quantity: 1})
	}

	return s.persistLocked(ctx)
}

// ChangeQuantity adjusts an item's quantity by delta. Absent items are a
// no-op, as is incrementing an out-of-stock item. A resulting quantity of
// 0 or less removes the item entirely.
func (s *Store) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	if delta > 0 && !s.items[idx].Product.InStock {
		return nil
	}

	newQuantity := s.items[idx].Quantity + delta
	if newQuantity <= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items[idx].Quantity = newQuantity
	}

	return s.persistLocked(ctx)
}

// Remove drops the item regardless of its quantity.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persistLocked(ctx)
		}
	}

	return nil
}

// Clear empties the cart and deletes its key. Checkout calls this after
// the order snapshot is safely persisted.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persistLocked(ctx)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// ItemCount is the sum of all quantities, used for cart badges.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// ScopeKey returns the storage key this cart persists under.
func (s *Store) ScopeKey() string {
	return s.key
}

func (s *Store) persistLocked(ctx context.Context) error {
	if len(s.items) == 0 {
		if err := s.store.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("cart: failed to delete empty cart %s: %w", s.key, err)
		}
		return nil
	}

	raw, err := storage.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("cart: failed to encode cart %s: %w", s.key, err)
	}
	if err := s.store.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("cart: failed to persist cart %s: %w", s.key, err)
	}

	return nil
}
