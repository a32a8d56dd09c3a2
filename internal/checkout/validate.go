package checkout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/medify/storefront/internal/order"
)

// ValidationError reports invalid checkout input. It is always
// recoverable: the flow stays in Editing and the user corrects the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: invalid %s: %s", e.Field, e.Message)
}

var expiryPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateDelivery enforces the required form fields and the method
// enums. Special instructions are the only optional field.
func ValidateDelivery(info order.DeliveryInfo) error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", info.FullName},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"state", info.State},
		{"zipCode", info.ZipCode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "is required"}
		}
	}

	switch info.DeliveryMethod {
	case order.MethodPickup, order.MethodDelivery:
	default:
		return &ValidationError{Field: "deliveryMethod", Message: "must be pickup or delivery"}
	}

	switch info.PaymentMethod {
	case order.PaymentCash, order.PaymentCard:
	default:
		return &ValidationError{Field: "paymentMethod", Message: "must be cash or card"}
	}

	return nil
}

// ValidateCard checks card details without ever charging or storing them:
// cardholder name of at least two characters, 13 to 19 card digits,
// an MM/YY expiry with a real month, and a 3 or 4 digit CVC.
func ValidateCard(card order.CardInfo) error {
	if len(strings.TrimSpace(card.CardholderName)) < 2 {
		return &ValidationError{Field: "cardholderName", Message: "must be at least 2 characters"}
	}

	digits := digitsOnly(card.CardNumber)
	if len(digits) < 13 || len(digits) > 19 {
		return &ValidationError{Field: "cardNumber", Message: "must be 13 to 19 digits"}
	}

	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(card.Expiry))
	if m == nil {
		return &ValidationError{Field: "expiry", Message: "must match MM/YY"}
	}
	month, _ := strconv.Atoi(m[1])
	if month < 1 || month > 12 {
		return &ValidationError{Field: "expiry", Message: "month must be between 01 and 12"}
	}

	cvc := digitsOnly(card.CVC)
	if len(cvc) < 3 || len(cvc) > 4 {
		return &ValidationError{Field: "cvc", Message: "must be 3 or 4 digits"}
	}

	return nil
}
