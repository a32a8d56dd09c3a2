package order

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/medify/storefront/internal/pricing"
)

// PickupCode renders a QR PNG the customer shows at the counter. The
// payload is plain text so any scanner app can read it.
func PickupCode(o *Order) ([]byte, error) {
	payload := fmt.Sprintf("%s|%s|$%s", o.OrderNumber, o.DeliveryInfo.DeliveryMethod, pricing.Format(o.Total))
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("order: failed to encode pickup code for %s: %w", o.OrderNumber, err)
	}
	return png, nil
}
