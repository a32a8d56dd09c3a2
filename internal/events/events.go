// Package events publishes storefront lifecycle events for downstream
// consumers (dashboards, notification workers). Publishing is optional:
// a nil Publisher disables it, and checkout never fails because an event
// could not be delivered.
package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/medify/storefront/internal/storage"
)

// OrderPlaced is emitted after an order snapshot has been persisted and
// the cart cleared.
type OrderPlaced struct {
	Type        string    `json:"type"`
	Template    string    `json:"template"`
	OrderNumber string    `json:"orderNumber"`
	Total       float64   `json:"total"`
	ItemCount   int       `json:"itemCount"`
	PlacedAt    time.Time `json:"placedAt"`
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlaced) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	payload, err := storage.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: payload,
	})
}
