package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/cart"
	"github.com/medify/storefront/internal/checkout"
	"github.com/medify/storefront/internal/events"
	"github.com/medify/storefront/internal/order"
	"github.com/medify/storefront/internal/pricing"
	"github.com/medify/storefront/internal/storage"
)

// CheckoutHandler turns a cart into a placed order.
type CheckoutHandler struct {
	store     storage.Store
	orders    order.Repository
	pricing   *pricing.Calculator
	numbers   *checkout.NumberGenerator
	publisher events.Publisher
	delay     time.Duration
}

func NewCheckoutHandler(store storage.Store, orders order.Repository, calc *pricing.Calculator, numbers *checkout.NumberGenerator, publisher events.Publisher, delay time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		store:     store,
		orders:    orders,
		pricing:   calc,
		numbers:   numbers,
		publisher: publisher,
		delay:     delay,
	}
}

type checkoutRequest struct {
	Delivery order.DeliveryInfo `json:"delivery"`
	Card     *order.CardInfo    `json:"card,omitempty"`
}

// Submit validates the checkout form and places the order. Validation
// failures come back as 422 with the offending field; an empty cart is a
// 409 telling the frontend to send the user back to the catalog.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	template, demo := requestScope(r)

	c, err := cart.NewStore(h.store, cart.ScopeFor(template, demo))
	if err != nil {
		http.Error(w, "failed to open cart", http.StatusInternalServerError)
		return
	}
	if err := c.Load(r.Context()); err != nil {
		log.Info().Msgf("Failed to load cart for checkout: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	flow := checkout.NewFlow(checkout.FlowOptions{
		Template:  template,
		Cart:      c,
		Orders:    h.orders,
		Pricing:   h.pricing,
		Numbers:   h.numbers,
		Publisher: h.publisher,
		Delay:     h.delay,
	})

	placed, err := flow.Submit(r.Context(), req.Delivery, req.Card)
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusConflict)
		case errors.As(err, &vErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"field": vErr.Field,
				"error": vErr.Message,
			})
		default:
			log.Info().Msgf("Failed to place order: %v", err)
			http.Error(w, "failed to place order", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(placed); err != nil {
		log.Info().Msgf("Failed to encode order response: %v", err)
	}
}
