package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrOrderAlreadyMerged is returned when attempting to merge an order that
	// already belongs to a merge group.
	ErrOrderAlreadyMerged = errors.New("order already belongs to a merge group")

	// ErrOrderNotMergeable is returned when attempting to merge an order in a
	// terminal status.
	ErrOrderNotMergeable = errors.New("order is in a terminal status and cannot be merged")
)

// Order represents a customer order in the system. It is the aggregate root that
// carries the merge-group bookkeeping driven by the consolidation engine.
//
// Order follows these invariants:
//   - Must have valid order, restaurant, and customer identifiers
//   - Must have a constructed drop-off point
//   - Belongs to at most one merge group at a time
//   - Merge fields are set exclusively by CommitMerge when a merge decision commits
//   - A terminal order never changes status or merge state again
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// restaurantID identifies the restaurant the order was placed with
	restaurantID kernel.UUID

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// dropoff is the delivery destination
	dropoff kernel.GeoPoint

	// placedAt is the order placement timestamp used for clustering windows
	placedAt time.Time

	// merged indicates the order has been committed into a merge group
	merged bool

	// mergeGroupID is the committed merge-group identifier (nil if unmerged)
	mergeGroupID *kernel.UUID

	// mergedWith holds the sibling order ids in the same merge group
	mergedWith []kernel.UUID

	// status is the current state in the order lifecycle
	status Status

	// guard ensures the order was properly constructed
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with no merge state.
// This is the entry point used when the order-placement collaborator hands an
// order to the consolidation engine.
//
// Parameters:
//   - id: Unique identifier for the order
//   - restaurantID: Identifier of the restaurant
//   - customerID: Identifier of the customer
//   - dropoff: Delivery destination (must be a constructed GeoPoint)
//   - placedAt: Placement timestamp (must not be zero)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Aggregated validation errors otherwise
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customerID kernel.UUID,
	dropoff kernel.GeoPoint,
	placedAt time.Time,
) (*Order, error) {
	order := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setRestaurantID(restaurantID),
		order.setCustomerID(customerID),
		order.setDropoff(dropoff),
		order.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage, including
// its merge state and current status. The restored order behaves identically to
// one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customerID kernel.UUID,
	dropoff kernel.GeoPoint,
	placedAt time.Time,
	status Status,
	mergeGroupID *kernel.UUID,
	mergedWith []kernel.UUID,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setRestaurantID(restaurantID),
		order.setCustomerID(customerID),
		order.setDropoff(dropoff),
		order.setPlacedAt(placedAt),
		order.setStatus(status),
		order.setMergeState(mergeGroupID, mergedWith),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the identifier of the restaurant the order belongs to.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Dropoff returns the delivery destination.
func (o *Order) Dropoff() kernel.GeoPoint {
	return o.dropoff
}

// PlacedAt returns the placement timestamp.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Merged reports whether the order has been committed into a merge group.
func (o *Order) Merged() bool {
	return o.merged
}

// MergeGroupID returns the committed merge-group identifier.
// Returns nil for unmerged orders.
func (o *Order) MergeGroupID() *kernel.UUID {
	return o.mergeGroupID
}

// MergedWith returns the sibling order ids sharing the order's merge group.
// Returns an empty slice for unmerged orders. The order's own id is never included.
func (o *Order) MergedWith() []kernel.UUID {
	return o.mergedWith
}

// IsMergeable reports whether the order may still be considered for clustering:
// not yet merged and not in a terminal status.
func (o *Order) IsMergeable() bool {
	return !o.merged && !o.status.IsTerminal()
}

// CommitMerge records the order's membership in a committed merge group.
//
// Business rules:
//   - The order must not already belong to a merge group
//   - The order must not be in a terminal status
//   - siblings must list the other members of the group, never the order itself
//
// The merge decision engine is the only caller; re-running a clustering pass over an
// already-merged order is a no-op upstream because merged orders are excluded from
// clustering input.
func (o *Order) CommitMerge(groupID kernel.UUID, siblings []kernel.UUID) error {
	if err := groupID.Validate(); err != nil {
		return err
	}
	if o.merged {
		return ErrOrderAlreadyMerged
	}
	if o.status.IsTerminal() {
		return ErrOrderNotMergeable
	}

	for _, sibling := range siblings {
		if sibling.IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("siblings",
				errors.New("sibling list must not contain the order itself"))
		}
	}

	o.merged = true
	o.mergeGroupID = &groupID
	o.mergedWith = append([]kernel.UUID(nil), siblings...)
	return nil
}

// MarkStatus transitions the order to a new lifecycle status.
// Transitions out of a terminal status are rejected; the order is left unchanged.
func (o *Order) MarkStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidStateTransitionError("order", o.status.String(), status.String())
	}

	o.status = status
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setRestaurantID validates and sets the restaurant identifier.
func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

// setCustomerID validates and sets the customer identifier.
func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

// setDropoff validates and sets the delivery destination.
func (o *Order) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	o.dropoff = dropoff
	return nil
}

// setPlacedAt validates and sets the placement timestamp.
func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placedAt")
	}
	o.placedAt = placedAt
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setMergeState restores the merge fields during reconstruction.
// A merge group id implies the merged flag; both must be consistent.
func (o *Order) setMergeState(mergeGroupID *kernel.UUID, mergedWith []kernel.UUID) error {
	if mergeGroupID == nil {
		if len(mergedWith) > 0 {
			return errs.NewValueIsInvalidErrorWithCause("mergedWith",
				errors.New("sibling list present without a merge group id"))
		}
		return nil
	}

	if err := mergeGroupID.Validate(); err != nil {
		return err
	}

	o.merged = true
	o.mergeGroupID = mergeGroupID
	o.mergedWith = append([]kernel.UUID(nil), mergedWith...)
	return nil
}
