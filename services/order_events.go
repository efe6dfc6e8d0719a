package services

import (
	"context"
	"time"

	"github.com/dineflow/table-orders-api/models"
)

// OrderEventType names what happened to an order
type OrderEventType string

const (
	OrderCreated OrderEventType = "order.created"
	OrderUpdated OrderEventType = "order.updated"
	OrderDeleted OrderEventType = "order.deleted"
)

// OrderEvent is the message published after an order mutation is committed
type OrderEvent struct {
	Type          OrderEventType       `json:"type"`
	OrderID       string               `json:"orderId"`
	TableNumber   int                  `json:"tableNumber,omitempty"`
	Status        models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus,omitempty"`
	TotalAmount   string               `json:"totalAmount,omitempty"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// OrderEventPublisher delivers order events to interested collaborators (kitchen display, notifications)
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, OrderEvent) error {
	return nil
}

func newOrderEvent(eventType OrderEventType, order models.Order, at time.Time) OrderEvent {
	event := OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		OccurredAt: at.UTC(),
	}
	if eventType == OrderDeleted {
		return event
	}

	event.TableNumber = order.TableNumber
	event.Status = order.Status
	event.PaymentStatus = order.PaymentStatus
	event.TotalAmount = order.TotalAmount.StringFixed(models.MoneyPlaces)
	return event
}
