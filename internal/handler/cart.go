package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/cart"
	"github.com/medify/storefront/internal/catalog"
	"github.com/medify/storefront/internal/pricing"
	"github.com/medify/storefront/internal/storage"
)

// CartHandler handles cart mutations for the storefront frontends.
type CartHandler struct {
	store   storage.Store
	catalog *catalog.Service
}

func NewCartHandler(store storage.Store, catalogSvc *catalog.Service) *CartHandler {
	return &CartHandler{store: store, catalog: catalogSvc}
}

type cartView struct {
	Items     []cart.Item `json:"items"`
	ItemCount int         `json:"itemCount"`
	Subtotal  float64     `json:"subtotal"`
}

func (h *CartHandler) openCart(r *http.Request) (*cart.Store, bool, error) {
	template, demo := requestScope(r)

	c, err := cart.NewStore(h.store, cart.ScopeFor(template, demo))
	if err != nil {
		return nil, demo, err
	}
	if err := c.Load(r.Context()); err != nil {
		return nil, demo, err
	}

	return c, demo, nil
}

func (h *CartHandler) writeCart(w http.ResponseWriter, c *cart.Store) {
	items := c.Items()
	view := cartView{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  pricing.Subtotal(items),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Info().Msgf("Failed to encode cart response: %v", err)
		http.Error(w, "invalid json", http.StatusInternalServerError)
	}
}

// GetCart returns the current cart for the request's scope.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, _, err := h.openCart(r)
	if err != nil {
		log.Info().Msgf("Failed to load cart: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	h.writeCart(w, c)
}

// AddItem puts one unit of a catalog product in the cart. Out-of-stock
// products leave the cart unchanged; the response is the (possibly
// unchanged) cart either way.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	c, demo, err := h.openCart(r)
	if err != nil {
		log.Info().Msgf("Failed to load cart: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	product, ok := h.catalog.FindByID(r.Context(), demo, body.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	if err := c.Add(r.Context(), product); err != nil {
		log.Info().Msgf("Failed to add cart item: %v", err)
		http.Error(w, "failed to update cart", http.StatusInternalServerError)
		return
	}

	h.writeCart(w, c)
}

// ChangeQuantity adjusts an item's quantity by a signed delta. Driving
// the quantity to zero removes the item.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		http.Error(w, "productID is required", http.StatusBadRequest)
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Delta == 0 {
		http.Error(w, "delta must be a non-zero integer", http.StatusBadRequest)
		return
	}

	c, _, err := h.openCart(r)
	if err != nil {
		log.Info().Msgf("Failed to load cart: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := c.ChangeQuantity(r.Context(), productID, body.Delta); err != nil {
		log.Info().Msgf("Failed to change cart quantity: %v", err)
		http.Error(w, "failed to update cart", http.StatusInternalServerError)
		return
	}

	h.writeCart(w, c)
}

// RemoveItem drops an item regardless of quantity.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		http.Error(w, "productID is required", http.StatusBadRequest)
		return
	}

	c, _, err := h.openCart(r)
	if err != nil {
		log.Info().Msgf("Failed to load cart: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	if err := c.Remove(r.Context(), productID); err != nil {
		log.Info().Msgf("Failed to remove cart item: %v", err)
		http.Error(w, "failed to update cart", http.StatusInternalServerError)
		return
	}

	h.writeCart(w, c)
}
