package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kariqs/storefront-api/models"
)

func TestOrderCreatedMessage(t *testing.T) {
	order := &models.Order{
		ID:          12,
		UserID:      7,
		Reference:   "session_abc",
		TotalAmount: 80,
		Items:       []models.OrderItem{{ProductID: 1, Quantity: 2, Price: 40}},
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	msg, err := orderCreatedMessage(order)
	require.NoError(t, err)
	assert.Equal(t, "7", string(msg.Key))

	var event OrderCreated
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, OrderCreatedType, event.Type)
	assert.Equal(t, uint(12), event.OrderID)
	assert.Equal(t, "session_abc", event.Reference)
	assert.Equal(t, order.Items, event.Items)
	assert.True(t, order.CreatedAt.Equal(event.CreatedAt))
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishOrderCreated(context.Background(), &models.Order{}))
	assert.NoError(t, p.Close())
}
