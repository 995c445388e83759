package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Kariqs/storefront-api/models"
)

const OrderCreatedType = "order.created"

// OrderCreated is the message published once an order has been persisted.
type OrderCreated struct {
	Type        string             `json:"type"`
	OrderID     uint               `json:"orderId"`
	UserID      uint               `json:"userId"`
	Reference   string             `json:"reference"`
	TotalAmount float64            `json:"totalAmount"`
	Items       []models.OrderItem `json:"items"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// KafkaPublisher writes order events keyed by user id so one user's events
// stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	msg, err := orderCreatedMessage(order)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func orderCreatedMessage(order *models.Order) (kafka.Message, error) {
	value, err := json.Marshal(OrderCreated{
		Type:        OrderCreatedType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Reference:   order.Reference,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(order.UserID), 10)),
		Value: value,
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *models.Order) error { return nil }

func (NoopPublisher) Close() error { return nil }
