package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves deliveries still in flight, meaning
// every delivery whose status is not terminal. Can optionally be scoped to a
// single partner's workload.
//
// Example:
//
//	query := NewGetActiveDeliveriesQuery()
//	deliveries, err := handler.Handle(ctx, query)
type GetActiveDeliveriesQuery struct {
	partnerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query to retrieve all in-flight deliveries.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// NewGetPartnerActiveDeliveriesQuery creates a query scoped to one partner.
func NewGetPartnerActiveDeliveriesQuery(partnerID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, err
	}

	return GetActiveDeliveriesQuery{
		partnerID: &partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveDeliveriesQueryIsNotConstructed if validation fails.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// PartnerID returns the partner scope, nil when the query spans all partners.
func (q GetActiveDeliveriesQuery) PartnerID() *kernel.UUID {
	return q.partnerID
}

// GetActiveDeliveriesQueryResponse represents an in-flight delivery in the read model.
// PartnerID is nil while the delivery awaits assignment.
type GetActiveDeliveriesQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	PartnerID *kernel.UUID
	Status    string
	Pickup    kernel.GeoPoint
	Dropoff   kernel.GeoPoint
	CreatedAt time.Time
}
