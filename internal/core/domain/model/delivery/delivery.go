package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New(
		"Delivery must be created via NewDelivery or RestoreDelivery constructors")
	// ErrCancellationReasonIsRequired is returned when cancelling without a reason.
	ErrCancellationReasonIsRequired = errs.NewValueIsRequiredError("cancellationReason")
)

// TrackingEvent is one append-only entry in a delivery's history.
// Events are recorded on every status transition and never modified.
type TrackingEvent struct {
	// Status is the status the delivery entered
	Status Status
	// OccurredAt is when the transition happened
	OccurredAt time.Time
	// Location is where the courier was when the transition happened,
	// nil when no position is known (e.g. cancellation by the restaurant)
	Location *kernel.GeoPoint
	// Note is an optional free-form annotation, e.g. the cancellation reason
	Note string
}

// Delivery represents the fulfillment of one order (or one merged group leader
// order) by a delivery partner. It is an aggregate root that owns the delivery
// lifecycle state machine and the append-only tracking history.
//
// Lifecycle:
//
//	PENDING -> ASSIGNED -> ACCEPTED -> PICKED_UP -> IN_TRANSIT -> DELIVERED
//
// with CANCELLED reachable up to PICKED_UP, FAILED from PICKED_UP and
// IN_TRANSIT, and RETURNED from IN_TRANSIT. Terminal statuses never change.
//
// Business rules:
//   - A partner is attached exactly once, by the PENDING -> ASSIGNED transition
//   - Every transition appends a TrackingEvent, with the courier position when
//     one is known (the partner's position at assignment, the pickup point at
//     collection and return, the drop-off point at hand-off)
//   - Cancellation always carries a reason
type Delivery struct {
	// id uniquely identifies the delivery
	id kernel.UUID
	// orderID is the order being fulfilled
	orderID kernel.UUID
	// partnerID is the assigned partner (nil while PENDING)
	partnerID *kernel.UUID
	// pickup is the restaurant location
	pickup kernel.GeoPoint
	// dropoff is the customer location
	dropoff kernel.GeoPoint
	// status is the current lifecycle status
	status Status
	// cancellationReason explains a CANCELLED outcome
	cancellationReason string
	// createdAt is when the delivery was created
	createdAt time.Time
	// assignedAt is when a partner was attached
	assignedAt *time.Time
	// pickedUpAt is when the partner collected the order
	pickedUpAt *time.Time
	// completedAt is when the delivery reached a terminal status
	completedAt *time.Time
	// events is the append-only tracking history
	events []TrackingEvent
	// loadedStatus is the status the aggregate had when loaded from storage.
	// Storage adapters write status changes conditionally on it, so that two
	// concurrent transitions on the same delivery cannot both succeed.
	loadedStatus Status
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates a new Delivery in Pending status for the given order.
// The creation itself is recorded as the first tracking event.
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	createdAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:       Pending,
		loadedStatus: Pending,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	d.events = append(d.events, TrackingEvent{Status: Pending, OccurredAt: createdAt})
	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage,
// including its tracking history and timestamps.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	partnerID *kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	status Status,
	cancellationReason string,
	createdAt time.Time,
	assignedAt *time.Time,
	pickedUpAt *time.Time,
	completedAt *time.Time,
	events []TrackingEvent,
) (*Delivery, error) {
	d := &Delivery{
		cancellationReason: cancellationReason,
		assignedAt:         assignedAt,
		pickedUpAt:         pickedUpAt,
		completedAt:        completedAt,
		loadedStatus:       status,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setCreatedAt(createdAt),
		d.setStatus(status),
		d.setPartnerID(partnerID),
	); err != nil {
		return nil, err
	}

	d.events = append([]TrackingEvent(nil), events...)
	return d, nil
}

// Validate checks if the Delivery was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the order being fulfilled.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// PartnerID returns the assigned partner, or nil while the delivery is pending.
func (d *Delivery) PartnerID() *kernel.UUID {
	return d.partnerID
}

// Pickup returns the restaurant location.
func (d *Delivery) Pickup() kernel.GeoPoint {
	return d.pickup
}

// Dropoff returns the customer location.
func (d *Delivery) Dropoff() kernel.GeoPoint {
	return d.dropoff
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// CancellationReason returns the reason recorded for a cancelled delivery.
func (d *Delivery) CancellationReason() string {
	return d.cancellationReason
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// AssignedAt returns when a partner was attached, or nil if never assigned.
func (d *Delivery) AssignedAt() *time.Time {
	return d.assignedAt
}

// PickedUpAt returns when the order was collected, or nil if never picked up.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// CompletedAt returns when the delivery reached a terminal status, or nil if active.
func (d *Delivery) CompletedAt() *time.Time {
	return d.completedAt
}

// Events returns the append-only tracking history.
// The returned slice is a copy to prevent external modification.
func (d *Delivery) Events() []TrackingEvent {
	return append([]TrackingEvent(nil), d.events...)
}

// LoadedStatus returns the status the delivery had when it was created or
// loaded from storage. It serves as the optimistic concurrency token for
// conditional status writes.
func (d *Delivery) LoadedStatus() Status {
	return d.loadedStatus
}

// IsActive reports whether the delivery is still in flight.
func (d *Delivery) IsActive() bool {
	return !d.status.IsTerminal()
}

// Assign attaches a partner and moves the delivery from Pending to Assigned.
// The partner's position at assignment time, when known, is recorded on the
// tracking event.
func (d *Delivery) Assign(partnerID kernel.UUID, from *kernel.GeoPoint, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if err := d.transitionTo(Assigned, at, "", from); err != nil {
		return err
	}

	d.partnerID = &partnerID
	d.assignedAt = &at
	return nil
}

// Accept records the partner's confirmation of the assignment.
func (d *Delivery) Accept(at time.Time) error {
	return d.transitionTo(Accepted, at, "", nil)
}

// MarkPickedUp records that the partner collected the order from the restaurant.
// The courier is at the pickup point, so the event carries it.
func (d *Delivery) MarkPickedUp(at time.Time) error {
	pickup := d.pickup
	if err := d.transitionTo(PickedUp, at, "", &pickup); err != nil {
		return err
	}

	d.pickedUpAt = &at
	return nil
}

// MarkInTransit records that the partner is en route to the drop-off point.
func (d *Delivery) MarkInTransit(at time.Time) error {
	return d.transitionTo(InTransit, at, "", nil)
}

// Complete records a successful delivery at the drop-off point.
func (d *Delivery) Complete(at time.Time) error {
	dropoff := d.dropoff
	return d.transitionTo(Delivered, at, "", &dropoff)
}

// Cancel aborts the delivery with a mandatory reason.
// Cancellation is allowed from any status before IN_TRANSIT.
func (d *Delivery) Cancel(reason string, at time.Time) error {
	if reason == "" {
		return ErrCancellationReasonIsRequired
	}
	if err := d.transitionTo(Cancelled, at, reason, nil); err != nil {
		return err
	}

	d.cancellationReason = reason
	return nil
}

// Fail records that the delivery could not be completed.
func (d *Delivery) Fail(note string, at time.Time) error {
	return d.transitionTo(Failed, at, note, nil)
}

// Return records that the order was brought back to the restaurant.
func (d *Delivery) Return(note string, at time.Time) error {
	pickup := d.pickup
	return d.transitionTo(Returned, at, note, &pickup)
}

// transitionTo validates and performs a transition, appending the tracking event
// and stamping completion timestamps for terminal statuses.
func (d *Delivery) transitionTo(target Status, at time.Time, note string, location *kernel.GeoPoint) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if !d.status.CanTransitionTo(target) {
		return errs.NewInvalidStateTransitionError("delivery", d.status.String(), target.String())
	}

	d.status = target
	d.events = append(d.events, TrackingEvent{
		Status:     target,
		OccurredAt: at,
		Location:   location,
		Note:       note,
	})
	if target.IsTerminal() {
		d.completedAt = &at
	}
	return nil
}

// setID sets the delivery's unique identifier with validation.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setOrderID sets the fulfilled order's identifier with validation.
func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

// setPickup validates and sets the restaurant location.
func (d *Delivery) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	d.pickup = pickup
	return nil
}

// setDropoff validates and sets the customer location.
func (d *Delivery) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	d.dropoff = dropoff
	return nil
}

// setCreatedAt validates and sets the creation timestamp.
func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}

// setStatus validates and sets the status during restoration.
func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

// setPartnerID restores the partner reference. A delivery past PENDING must
// have a partner; a pending one must not.
func (d *Delivery) setPartnerID(partnerID *kernel.UUID) error {
	if partnerID == nil {
		if d.status != Pending && d.status != Cancelled {
			return errs.NewValueIsRequiredError("partnerID")
		}
		return nil
	}

	if err := partnerID.Validate(); err != nil {
		return err
	}
	d.partnerID = partnerID
	return nil
}
