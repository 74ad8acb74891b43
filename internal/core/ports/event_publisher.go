package ports

import (
	"context"
	"time"
)

// Topics for domain events published on the message bus.
const (
	TopicMergeCompleted    = "dispatch.merge.completed"
	TopicDeliveryAssigned  = "dispatch.delivery.assigned"
	TopicDeliveryCompleted = "dispatch.delivery.completed"
	TopicDeliveryCancelled = "dispatch.delivery.cancelled"
)

// MergeCompletedEvent is published when a merge group commits.
type MergeCompletedEvent struct {
	GroupID                 string    `json:"groupId"`
	OrderIDs                []string  `json:"orderIds"`
	RestaurantID            string    `json:"restaurantId"`
	Score                   float64   `json:"score"`
	EstimatedSavingsMinutes int       `json:"estimatedSavingsMinutes"`
	OccurredAt              time.Time `json:"occurredAt"`
}

// DeliveryEvent is published on delivery lifecycle milestones: assignment,
// completion, and cancellation.
type DeliveryEvent struct {
	DeliveryID string    `json:"deliveryId"`
	OrderID    string    `json:"orderId"`
	PartnerID  string    `json:"partnerId,omitempty"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher is the outbound messaging contract. Publishing is fire and
// forget: implementations enqueue without waiting for delivery confirmation,
// and a publish failure is logged by the caller rather than propagated into
// the business result.
type EventPublisher interface {
	// Publish enqueues an event on the given topic.
	Publish(ctx context.Context, topic string, event any) error
}
