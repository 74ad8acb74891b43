package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a customer order.
//
// Orders are created by the order-placement flow in Pending status, move through
// restaurant preparation and courier fulfillment, and finish in one of the terminal
// states. Orders are never deleted; they only transition to a terminal status.
//
// Terminal states: Delivered, Cancelled, Rejected, Refunded.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is placed and waiting for
	// restaurant confirmation. Only pending orders participate in clustering.
	Pending

	// Confirmed indicates the restaurant accepted the order.
	Confirmed

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// ReadyForPickup indicates the order is waiting for a courier at the restaurant.
	ReadyForPickup

	// PickedUp indicates a courier collected the order.
	PickedUp

	// OutForDelivery indicates the order is on its way to the customer.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled

	// Rejected indicates the restaurant declined the order. Terminal.
	Rejected

	// Refunded indicates the order was refunded after the fact. Terminal.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Preparing:      "Preparing",
		ReadyForPickup: "ReadyForPickup",
		PickedUp:       "PickedUp",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
		Rejected:       "Rejected",
		Refunded:       "Refunded",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// Validate checks if the Status value is a member of the order status taxonomy.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is one of the terminal states.
// Terminal orders never change status again and are excluded from clustering.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Rejected, Refunded:
		return true
	default:
		return false
	}
}

// CanBeCancelled reports whether an order in this status may still be cancelled
// by the customer. Once preparation starts, cancellation goes through support.
func (s Status) CanBeCancelled() bool {
	return s == Pending || s == Confirmed
}
