// Package checkout drives order placement: it validates the delivery
// form, walks the Editing -> Submitting -> Placed state machine, persists
// the order snapshot, and clears the cart. The "processing" pause is
// cosmetic — nothing external is called — so the delay is injectable and
// zero in tests.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/cart"
	"github.com/medify/storefront/internal/events"
	"github.com/medify/storefront/internal/order"
	"github.com/medify/storefront/internal/pricing"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StatePlaced     State = "placed"
)

var allowedTransitions = map[State]map[State]bool{
	StateEditing:    {StateSubmitting: true},
	StateSubmitting: {StatePlaced: true, StateEditing: true},
	StatePlaced:     {},
}

var (
	// ErrEmptyCart is a precondition failure: callers redirect to the
	// catalog instead of rendering a checkout form.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	ErrAlreadyPlaced = errors.New("checkout: order already placed")
)

// FlowOptions wires a Flow. Publisher and Now are optional.
type FlowOptions struct {
	Template  string
	Cart      *cart.Store
	Orders    order.Repository
	Pricing   *pricing.Calculator
	Numbers   *NumberGenerator
	Publisher events.Publisher
	Delay     time.Duration
	Now       func() time.Time
}

// Flow is one checkout attempt over one cart. It is bound to the cart's
// scope and is not reusable after the order is placed.
type Flow struct {
	template  string
	cart      *cart.Store
	orders    order.Repository
	pricing   *pricing.Calculator
	numbers   *NumberGenerator
	publisher events.Publisher
	delay     time.Duration
	now       func() time.Time
	state     State
}

func NewFlow(opts FlowOptions) *Flow {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Flow{
		template:  opts.Template,
		cart:      opts.Cart,
		orders:    opts.Orders,
		pricing:   opts.Pricing,
		numbers:   opts.Numbers,
		publisher: opts.Publisher,
		delay:     opts.Delay,
		now:       now,
		state:     StateEditing,
	}
}

func (f *Flow) State() State {
	return f.state
}

// Submit runs the full placement transition. Validation failures keep the
// flow in Editing and create no partial order; on success the order is
// persisted, the cart cleared, and the flow ends in Placed.
func (f *Flow) Submit(ctx context.Context, delivery order.DeliveryInfo, card *order.CardInfo) (*order.Order, error) {
	if f.state == StatePlaced {
		return nil, ErrAlreadyPlaced
	}

	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := ValidateDelivery(delivery); err != nil {
		return nil, err
	}

	payment := order.PaymentSummary{Method: delivery.PaymentMethod}
	if delivery.PaymentMethod == order.PaymentCard {
		if card == nil {
			return nil, &ValidationError{Field: "card", Message: "card details are required"}
		}
		if err := ValidateCard(*card); err != nil {
			return nil, err
		}
		digits := digitsOnly(card.CardNumber)
		payment.Last4 = digits[len(digits)-4:]
	}

	if err := f.transition(StateSubmitting); err != nil {
		return nil, err
	}

	// Simulated processing. Runs to completion; there is no real call to
	// cancel. An interruption before this point leaves only the intact
	// pre-submission cart behind.
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	subtotal := pricing.Subtotal(items)
	fee := f.pricing.DeliveryFee(pricing.DeliveryMethod(delivery.DeliveryMethod))

	o := &order.Order{
		OrderNumber:  f.numbers.Next(),
		Template:     f.template,
		Items:        items,
		DeliveryInfo: delivery,
		Payment:      payment,
		Subtotal:     subtotal,
		DeliveryFee:  fee,
		Total:        subtotal + fee,
		PlacedAt:     f.now().UTC(),
	}

	if err := f.orders.Save(ctx, o); err != nil {
		f.state = StateEditing
		return nil, fmt.Errorf("checkout: failed to persist order: %w", err)
	}

	if err := f.cart.Clear(ctx); err != nil {
		// The order is already durable; a cart left behind is the lesser
		// problem and the next load will show it still there.
		log.Error().Err(err).Str("order_number", o.OrderNumber).Msg("checkout: failed to clear cart after placement")
	}

	if err := f.transition(StatePlaced); err != nil {
		return nil, err
	}

	f.publishPlaced(ctx, o)

	log.Info().
		Str("order_number", o.OrderNumber).
		Str("template", f.template).
		Float64("total", o.Total).
		Msg("checkout: order placed")

	return o, nil
}

func (f *Flow) transition(next State) error {
	if !allowedTransitions[f.state][next] {
		return fmt.Errorf("checkout: invalid state transition from %s to %s", f.state, next)
	}
	f.state = next
	return nil
}

func (f *Flow) publishPlaced(ctx context.Context, o *order.Order) {
	if f.publisher == nil {
		return
	}

	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}

	event := events.OrderPlaced{
		Type:        "order_placed",
		Template:    o.Template,
		OrderNumber: o.OrderNumber,
		Total:       o.Total,
		ItemCount:   count,
		PlacedAt:    o.PlacedAt,
	}
	if err := f.publisher.PublishOrderPlaced(ctx, event); err != nil {
		log.Warn().Err(err).Str("order_number", o.OrderNumber).Msg("checkout: failed to publish order event")
	}
}
