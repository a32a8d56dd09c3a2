// Package pricing derives monetary totals from a cart. Everything here is
// a pure function over its arguments; totals are recomputed on every read
// instead of cached alongside the cart.
package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medify/storefront/internal/cart"
	"github.com/medify/storefront/internal/catalog"
)

// DefaultDeliveryFee is the flat fee charged for home delivery.
const DefaultDeliveryFee = 5.99

type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryHome   DeliveryMethod = "delivery"
)

// Calculator holds the storefront's fee schedule.
type Calculator struct {
	deliveryFee float64
}

func NewCalculator(deliveryFee float64) *Calculator {
	return &Calculator{deliveryFee: deliveryFee}
}

// UnitPrice parses a product's display price. The stored form is a
// currency string ("$9.99"); anything unparsable is worth 0 rather than
// an error, matching how the storefronts render missing prices.
func UnitPrice(p catalog.Product) float64 {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p.Price), "$"))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// LineTotal is the unit price times the quantity.
func LineTotal(item cart.Item) float64 {
	return UnitPrice(item.Product) * float64(item.Quantity)
}

// Subtotal sums the line totals. Order of items does not matter.
func Subtotal(items []cart.Item) float64 {
	total := 0.0
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}

// DeliveryFee is the flat fee for home delivery and 0 for pickup,
// regardless of cart contents.
func (c *Calculator) DeliveryFee(method DeliveryMethod) float64 {
	if method == DeliveryHome {
		return c.deliveryFee
	}
	return 0
}

// Total is subtotal plus delivery fee.
func (c *Calculator) Total(items []cart.Item, method DeliveryMethod) float64 {
	return Subtotal(items) + c.DeliveryFee(method)
}

// Format renders an amount with exactly two decimal places.
func Format(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
