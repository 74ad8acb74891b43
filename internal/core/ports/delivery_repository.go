package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate. Status changes
	// are written conditionally on the stored status still matching the status
	// the aggregate transitioned from, so that two concurrent transitions on the
	// same delivery cannot both succeed.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByOrderID retrieves the non-terminal delivery for an order, if
	// one exists. Used to enforce at most one active delivery per order.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetAllPending retrieves the deliveries still waiting for a partner.
	// This is the input of the assignment retry sweep.
	GetAllPending(ctx context.Context) ([]*delivery.Delivery, error)
}
