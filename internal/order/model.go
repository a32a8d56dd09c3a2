package order

import (
	"time"

	"github.com/medify/storefront/internal/cart"
)

type DeliveryMethod string

const (
	MethodPickup   DeliveryMethod = "pickup"
	MethodDelivery DeliveryMethod = "delivery"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// DeliveryInfo is the checkout form data snapshotted into an order.
// Everything except SpecialInstructions is required before submission.
type DeliveryInfo struct {
	FullName            string         `json:"fullName"`
	Email               string         `json:"email"`
	Phone               string         `json:"phone"`
	Address             string         `json:"address"`
	City                string         `json:"city"`
	State               string         `json:"state"`
	ZipCode             string         `json:"zipCode"`
	DeliveryMethod      DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod       PaymentMethod  `json:"paymentMethod"`
	SpecialInstructions string         `json:"specialInstructions,omitempty"`
}

// CardInfo is validated at checkout and then discarded; only the last
// four digits survive into the payment summary. Nothing is ever charged.
type CardInfo struct {
	CardholderName string `json:"cardholderName"`
	CardNumber     string `json:"cardNumber"`
	Expiry         string `json:"expiry"` // MM/YY
	CVC            string `json:"cvc"`
}

// PaymentSummary records how the order will be paid, with the card
// reduced to its last four digits.
type PaymentSummary struct {
	Method PaymentMethod `json:"method"`
	Last4  string        `json:"last4,omitempty"`
}

// Order is the immutable record of a successful checkout. It persists
// under its own key, independent of the cart it was built from.
type Order struct {
	OrderNumber  string         `json:"orderNumber"`
	Template     string         `json:"template"`
	Items        []cart.Item    `json:"items"`
	DeliveryInfo DeliveryInfo   `json:"deliveryInfo"`
	Payment      PaymentSummary `json:"payment"`
	Subtotal     float64        `json:"subtotal"`
	DeliveryFee  float64        `json:"deliveryFee"`
	Total        float64        `json:"total"`
	PlacedAt     time.Time      `json:"placedAt"`
}
