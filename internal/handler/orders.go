package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/order"
)

// OrderHandler serves placed-order lookups for confirmations and the
// dashboard history view.
type OrderHandler struct {
	orders order.Repository
}

func NewOrderHandler(orders order.Repository) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListOrders returns the template's orders, newest first.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	template, _ := requestScope(r)

	orders, err := h.orders.ListByTemplate(r.Context(), template)
	if err != nil {
		log.Info().Msgf("Failed to list orders: %v", err)
		http.Error(w, "failed to list orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		log.Info().Msgf("Failed to encode orders response: %v", err)
		http.Error(w, "invalid json", http.StatusInternalServerError)
	}
}

// GetOrder returns one order by its number.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		http.Error(w, "order number is required", http.StatusBadRequest)
		return
	}

	template, _ := requestScope(r)

	o, err := h.orders.GetByNumber(r.Context(), template, number)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Info().Msgf("Failed to get order: %v", err)
		http.Error(w, "failed to get order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		log.Info().Msgf("Failed to encode order response: %v", err)
		http.Error(w, "invalid json", http.StatusInternalServerError)
	}
}

// PickupCode returns the order's pickup QR as a PNG.
func (h *OrderHandler) PickupCode(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		http.Error(w, "order number is required", http.StatusBadRequest)
		return
	}

	template, _ := requestScope(r)

	o, err := h.orders.GetByNumber(r.Context(), template, number)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Info().Msgf("Failed to get order for pickup code: %v", err)
		http.Error(w, "failed to get order", http.StatusInternalServerError)
		return
	}

	png, err := order.PickupCode(o)
	if err != nil {
		log.Info().Msgf("Failed to render pickup code: %v", err)
		http.Error(w, "failed to render pickup code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
