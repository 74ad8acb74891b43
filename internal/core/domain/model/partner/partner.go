package partner

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// RatingMin is the lowest possible partner rating.
	RatingMin = 0.0
	// RatingMax is the highest possible partner rating.
	RatingMax = 5.0
	// DefaultMaxConcurrentOrders is the capacity assigned to new partners.
	DefaultMaxConcurrentOrders = 3
	// DefaultDeliveryRadiusKm is the operating radius assigned to new partners.
	DefaultDeliveryRadiusKm = 10.0
)

// Domain errors for delivery partner operations.
var (
	// ErrNameIsRequired is returned when attempting to create a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized DeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New(
		"DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner constructors")
	// ErrPartnerNotAvailable is returned when assigning work to a partner that is not accepting orders.
	ErrPartnerNotAvailable = errors.New("partner is not available for new orders")
	// ErrOrderNotAssigned is returned when completing or cancelling an order the partner is not carrying.
	ErrOrderNotAssigned = errors.New("order is not assigned to this partner")
	// ErrOrderAlreadyAssigned is returned when assigning an order the partner already carries.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to this partner")
)

// DeliveryPartner represents a courier who picks up and delivers orders.
// It is an aggregate root that manages the partner's identity, current position,
// availability, concurrent workload, and lifetime delivery statistics.
//
// Business rules:
//   - A partner can carry at most maxConcurrentOrders orders at once
//   - Assigning the last free slot flips availability to Busy
//   - Completing or cancelling an order below capacity flips Busy back to Available
//   - Rating stays within [0, 5]
//   - The version counter supports optimistic concurrency in storage
type DeliveryPartner struct {
	// id uniquely identifies the partner
	id kernel.UUID
	// name is the human-readable name of the partner
	name string
	// location is the partner's last reported position
	location kernel.GeoPoint
	// availability is the partner's readiness to take work
	availability Availability
	// active marks partners currently participating in dispatch
	active bool
	// verified marks partners who passed onboarding checks
	verified bool
	// rating is the partner's average customer rating in [0, 5]
	rating float64
	// totalDeliveries counts all deliveries ever assigned and finished (completed or cancelled)
	totalDeliveries int
	// completedDeliveries counts successfully finished deliveries
	completedDeliveries int
	// cancelledDeliveries counts deliveries cancelled after assignment
	cancelledDeliveries int
	// activeOrderIDs lists the orders the partner is currently carrying
	activeOrderIDs []kernel.UUID
	// maxConcurrentOrders is the capacity limit for simultaneous orders
	maxConcurrentOrders int
	// deliveryRadiusKm is how far from its location the partner accepts pickups
	deliveryRadiusKm float64
	// version supports optimistic locking in the persistence layer
	version int
	// guard ensures the partner was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryPartner creates a new DeliveryPartner with default capacity and radius.
// New partners start Offline, unverified, with an empty workload and zero statistics.
//
// Parameters:
//   - id: Unique identifier for the partner
//   - name: Human-readable name (must be non-empty)
//   - location: Initial position (must be a constructed GeoPoint)
//
// Returns:
//   - *DeliveryPartner: A fully initialized partner
//   - error: Aggregated validation errors otherwise
func NewDeliveryPartner(id kernel.UUID, name string, location kernel.GeoPoint) (*DeliveryPartner, error) {
	partner := &DeliveryPartner{
		availability:        Offline,
		maxConcurrentOrders: DefaultMaxConcurrentOrders,
		deliveryRadiusKm:    DefaultDeliveryRadiusKm,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partner.setID(id),
		partner.setName(name),
		partner.setLocation(location),
	); err != nil {
		return nil, err
	}

	return partner, nil
}

// RestoreDeliveryPartner reconstructs a DeliveryPartner aggregate from persistent
// storage, including workload, statistics, and the optimistic-locking version.
func RestoreDeliveryPartner(
	id kernel.UUID,
	name string,
	location kernel.GeoPoint,
	availability Availability,
	active bool,
	verified bool,
	rating float64,
	totalDeliveries int,
	completedDeliveries int,
	cancelledDeliveries int,
	activeOrderIDs []kernel.UUID,
	maxConcurrentOrders int,
	deliveryRadiusKm float64,
	version int,
) (*DeliveryPartner, error) {
	partner := &DeliveryPartner{
		active:   active,
		verified: verified,
		version:  version,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partner.setID(id),
		partner.setName(name),
		partner.setLocation(location),
		partner.setAvailability(availability),
		partner.setRating(rating),
		partner.setCounters(totalDeliveries, completedDeliveries, cancelledDeliveries),
		partner.setMaxConcurrentOrders(maxConcurrentOrders),
		partner.setDeliveryRadiusKm(deliveryRadiusKm),
		partner.setActiveOrderIDs(activeOrderIDs),
	); err != nil {
		return nil, err
	}

	return partner, nil
}

// Validate checks if the DeliveryPartner was properly constructed.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by their unique identifiers.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// Location returns the partner's last reported position.
func (p *DeliveryPartner) Location() kernel.GeoPoint {
	return p.location
}

// Availability returns the partner's current availability.
func (p *DeliveryPartner) Availability() Availability {
	return p.availability
}

// Active reports whether the partner participates in dispatch.
func (p *DeliveryPartner) Active() bool {
	return p.active
}

// Verified reports whether the partner passed onboarding checks.
func (p *DeliveryPartner) Verified() bool {
	return p.verified
}

// Rating returns the partner's average customer rating.
func (p *DeliveryPartner) Rating() float64 {
	return p.rating
}

// TotalDeliveries returns the number of finished deliveries (completed plus cancelled).
func (p *DeliveryPartner) TotalDeliveries() int {
	return p.totalDeliveries
}

// CompletedDeliveries returns the number of successfully finished deliveries.
func (p *DeliveryPartner) CompletedDeliveries() int {
	return p.completedDeliveries
}

// CancelledDeliveries returns the number of deliveries cancelled after assignment.
func (p *DeliveryPartner) CancelledDeliveries() int {
	return p.cancelledDeliveries
}

// ActiveOrderIDs returns the orders the partner is currently carrying.
// The returned slice is a copy to prevent external modification.
func (p *DeliveryPartner) ActiveOrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), p.activeOrderIDs...)
}

// ActiveOrderCount returns the partner's current concurrent workload.
func (p *DeliveryPartner) ActiveOrderCount() int {
	return len(p.activeOrderIDs)
}

// MaxConcurrentOrders returns the partner's concurrent-order capacity.
func (p *DeliveryPartner) MaxConcurrentOrders() int {
	return p.maxConcurrentOrders
}

// DeliveryRadiusKm returns the partner's operating radius in kilometers.
func (p *DeliveryPartner) DeliveryRadiusKm() float64 {
	return p.deliveryRadiusKm
}

// Version returns the optimistic-locking version of the aggregate.
func (p *DeliveryPartner) Version() int {
	return p.version
}

// CompletionRate returns the fraction of finished deliveries that completed
// successfully. Partners with no history get 0.
func (p *DeliveryPartner) CompletionRate() float64 {
	if p.totalDeliveries == 0 {
		return 0
	}
	return float64(p.completedDeliveries) / float64(p.totalDeliveries)
}

// HasCapacity reports whether the partner can take one more order.
func (p *DeliveryPartner) HasCapacity() bool {
	return len(p.activeOrderIDs) < p.maxConcurrentOrders
}

// CanAcceptOrder reports whether the partner is eligible for a new assignment:
// available, active, verified, and below capacity.
func (p *DeliveryPartner) CanAcceptOrder() bool {
	return p.availability == Available && p.active && p.verified && p.HasCapacity()
}

// AssignOrder adds an order to the partner's workload.
//
// Business rules:
//   - The partner must be Available
//   - The partner must have free capacity
//   - The same order cannot be assigned twice
//
// Assigning the last free slot flips availability to Busy.
func (p *DeliveryPartner) AssignOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if p.availability != Available {
		return ErrPartnerNotAvailable
	}
	if !p.HasCapacity() {
		return errs.NewCapacityExceededError(p.id.String(), p.maxConcurrentOrders)
	}
	if p.carriesOrder(orderID) {
		return ErrOrderAlreadyAssigned
	}

	p.activeOrderIDs = append(p.activeOrderIDs, orderID)
	if !p.HasCapacity() {
		p.availability = Busy
	}
	return nil
}

// CompleteOrder removes an order from the workload and updates statistics.
// A Busy partner dropping below capacity becomes Available again.
func (p *DeliveryPartner) CompleteOrder(orderID kernel.UUID) error {
	if err := p.releaseOrder(orderID); err != nil {
		return err
	}

	p.totalDeliveries++
	p.completedDeliveries++
	return nil
}

// CancelOrder removes an order from the workload and records the cancellation.
// A Busy partner dropping below capacity becomes Available again.
func (p *DeliveryPartner) CancelOrder(orderID kernel.UUID) error {
	if err := p.releaseOrder(orderID); err != nil {
		return err
	}

	p.totalDeliveries++
	p.cancelledDeliveries++
	return nil
}

// SetAvailability changes the partner's availability.
// A partner carrying a full workload cannot declare itself Available.
func (p *DeliveryPartner) SetAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	if availability == Available && !p.HasCapacity() {
		return errs.NewCapacityExceededError(p.id.String(), p.maxConcurrentOrders)
	}

	p.availability = availability
	return nil
}

// MoveTo updates the partner's last reported position.
func (p *DeliveryPartner) MoveTo(location kernel.GeoPoint) error {
	return p.setLocation(location)
}

// UpdateRating replaces the partner's average customer rating.
func (p *DeliveryPartner) UpdateRating(rating float64) error {
	return p.setRating(rating)
}

// Verify marks the partner as having passed onboarding checks.
func (p *DeliveryPartner) Verify() {
	p.verified = true
}

// Activate enables the partner for dispatch.
func (p *DeliveryPartner) Activate() {
	p.active = true
}

// Deactivate removes the partner from dispatch.
func (p *DeliveryPartner) Deactivate() {
	p.active = false
}

// releaseOrder removes an order from the active workload and restores
// availability when the partner drops below capacity.
func (p *DeliveryPartner) releaseOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	for i, id := range p.activeOrderIDs {
		if id.IsEqual(orderID) {
			p.activeOrderIDs = append(p.activeOrderIDs[:i], p.activeOrderIDs[i+1:]...)
			if p.availability == Busy && p.HasCapacity() {
				p.availability = Available
			}
			return nil
		}
	}

	return ErrOrderNotAssigned
}

// carriesOrder reports whether the order is already in the active workload.
func (p *DeliveryPartner) carriesOrder(orderID kernel.UUID) bool {
	for _, id := range p.activeOrderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// setID sets the partner's unique identifier with validation.
func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setName sets the partner's name with validation.
func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

// setLocation sets the partner's position with validation.
func (p *DeliveryPartner) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	p.location = location
	return nil
}

// setAvailability sets the availability during restoration.
func (p *DeliveryPartner) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	p.availability = availability
	return nil
}

// setRating validates and sets the rating.
func (p *DeliveryPartner) setRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	p.rating = rating
	return nil
}

// setCounters validates and sets the lifetime delivery statistics.
func (p *DeliveryPartner) setCounters(total, completed, cancelled int) error {
	if total < 0 || completed < 0 || cancelled < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryCounters",
			errors.New("delivery counters must not be negative"))
	}
	if completed+cancelled > total {
		return errs.NewValueIsInvalidErrorWithCause("deliveryCounters",
			errors.New("completed and cancelled deliveries exceed total"))
	}

	p.totalDeliveries = total
	p.completedDeliveries = completed
	p.cancelledDeliveries = cancelled
	return nil
}

// setMaxConcurrentOrders validates and sets the capacity limit.
func (p *DeliveryPartner) setMaxConcurrentOrders(limit int) error {
	if limit <= 0 {
		return errs.NewValueIsRequiredError("maxConcurrentOrders")
	}
	p.maxConcurrentOrders = limit
	return nil
}

// setDeliveryRadiusKm validates and sets the operating radius.
func (p *DeliveryPartner) setDeliveryRadiusKm(radius float64) error {
	if radius <= 0 {
		return errs.NewValueIsRequiredError("deliveryRadiusKm")
	}
	p.deliveryRadiusKm = radius
	return nil
}

// setActiveOrderIDs restores the workload with validation against capacity.
func (p *DeliveryPartner) setActiveOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) > p.maxConcurrentOrders {
		return errs.NewCapacityExceededError(p.id.String(), p.maxConcurrentOrders)
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	p.activeOrderIDs = append([]kernel.UUID(nil), orderIDs...)
	return nil
}
