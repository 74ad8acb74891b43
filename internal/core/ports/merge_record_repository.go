package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// MergeRecordRepository defines the persistence contract for merge audit records.
// Records are append-only: there is no update operation.
type MergeRecordRepository interface {
	// Add persists a new merge record. It is written in the same transaction as
	// the order updates the merge caused.
	Add(ctx context.Context, record *order.MergeRecord) error

	// Get retrieves a merge record by its group identifier.
	Get(ctx context.Context, groupID kernel.UUID) (*order.MergeRecord, error)

	// GetAllByRestaurant retrieves the merge records created for a restaurant.
	GetAllByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.MergeRecord, error)
}
