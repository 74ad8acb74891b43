// Package ports defines repository and messaging interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner aggregates.
// Provides methods for storing, retrieving, and geographically querying partners.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage.
	// The partner must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner aggregate using optimistic
	// locking: the stored row's version must match the aggregate's version or
	// the update fails with a version error, in which case the caller reloads
	// and retries. On success the stored version is incremented.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAllInBoundingBox retrieves active, verified, AVAILABLE partners whose
	// stored coordinates fall within the box. The box is a cheap pre-filter:
	// the result is a superset of the true search circle and callers apply any
	// precise distance check themselves.
	GetAllInBoundingBox(ctx context.Context, box kernel.BoundingBox) ([]*partner.DeliveryPartner, error)
}
