package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// OrderEventKind names the integration events emitted by order management.
type OrderEventKind string

const (
	OrderPlaced          OrderEventKind = "order.placed"
	OrderStatusChanged   OrderEventKind = "order.status_changed"
	OrderCancelRequested OrderEventKind = "order.cancel_requested"
)

// OrderEvent is the integration message published to the order events topic
// after a state change has been durably persisted. Publication is best-effort
// and never affects the outcome of the originating request.
type OrderEvent struct {
	Kind       OrderEventKind `json:"kind"`
	OrderID    string         `json:"orderId"`
	CustomerID string         `json:"customerId"`
	Status     string         `json:"status"`
	Reason     string         `json:"reason,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// NewOrderEvent builds an event snapshot from an order aggregate.
func NewOrderEvent(kind OrderEventKind, aggregate *order.Order) OrderEvent {
	return OrderEvent{
		Kind:       kind,
		OrderID:    aggregate.ID().String(),
		CustomerID: aggregate.CustomerID().String(),
		Status:     aggregate.Status().String(),
		Reason:     aggregate.ReasonCancel(),
		OccurredAt: aggregate.UpdatedAt(),
	}
}

// OrderEventPublisher publishes order integration events to the message broker.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
