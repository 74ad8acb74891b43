package delivery

import (
	"dispatch/internal/pkg/errs"
)

// Status represents a delivery's position in its lifecycle.
type Status int

const (
	// StatusUnknown represents an invalid or unset status.
	StatusUnknown Status = iota
	// Pending means the delivery was created and awaits partner assignment.
	Pending
	// Assigned means a partner was matched but has not yet accepted.
	Assigned
	// Accepted means the partner confirmed the assignment.
	Accepted
	// PickedUp means the partner collected the order from the restaurant.
	PickedUp
	// InTransit means the partner is en route to the drop-off point.
	InTransit
	// Delivered means the order reached the customer.
	Delivered
	// Cancelled means the delivery was cancelled before completion.
	Cancelled
	// Failed means the delivery could not be completed.
	Failed
	// Returned means the order was brought back to the restaurant.
	Returned
)

// getStatusStrings returns the mapping of all status values to their string
// representations, including the unknown value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Pending:       "PENDING",
		Assigned:      "ASSIGNED",
		Accepted:      "ACCEPTED",
		PickedUp:      "PICKED_UP",
		InTransit:     "IN_TRANSIT",
		Delivered:     "DELIVERED",
		Cancelled:     "CANCELLED",
		Failed:        "FAILED",
		Returned:      "RETURNED",
	}
}

// getValidStatusStrings returns the mapping of valid status values only.
func getValidStatusStrings() map[Status]string {
	strings := getStatusStrings()
	delete(strings, StatusUnknown)
	return strings
}

// getStatusTransitions returns the allowed transitions of the delivery lifecycle.
// Statuses absent from the map are terminal.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {Accepted, Cancelled},
		Accepted:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled, Failed},
		InTransit: {Delivered, Failed, Returned},
	}
}

// StatusFromString parses the string representation of a delivery status.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		errs.ErrValueIsInvalid)
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			errs.ErrValueIsInvalid)
	}

	return nil
}

// String returns the string representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[StatusUnknown]
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Failed, Returned:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle permits moving to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
