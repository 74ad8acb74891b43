package partner

import (
	"dispatch/internal/pkg/errs"
)

// Availability represents a delivery partner's readiness to take work.
type Availability int

const (
	// AvailabilityUnknown represents an invalid or unset availability.
	AvailabilityUnknown Availability = iota
	// Available means the partner is online and can accept new orders.
	Available
	// Busy means the partner is at maximum concurrent-order capacity.
	Busy
	// Offline means the partner is not working.
	Offline
	// OnBreak means the partner is temporarily unavailable.
	OnBreak
)

// getAvailabilityStrings returns the mapping of all availability values to their
// string representations, including the unknown value.
func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "UNKNOWN",
		Available:           "AVAILABLE",
		Busy:                "BUSY",
		Offline:             "OFFLINE",
		OnBreak:             "ON_BREAK",
	}
}

// getValidAvailabilityStrings returns the mapping of valid availability values only.
func getValidAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		Available: "AVAILABLE",
		Busy:      "BUSY",
		Offline:   "OFFLINE",
		OnBreak:   "ON_BREAK",
	}
}

// AvailabilityFromString parses the string representation of an availability value.
func AvailabilityFromString(value string) (Availability, error) {
	for availability, str := range getValidAvailabilityStrings() {
		if str == value {
			return availability, nil
		}
	}

	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause("availability",
		errs.ErrValueIsInvalid)
}

// Validate checks that the availability is one of the defined values.
func (a Availability) Validate() error {
	if _, ok := getValidAvailabilityStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("availability is invalid",
			errs.ErrValueIsInvalid)
	}

	return nil
}

// String returns the string representation of the availability.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return getAvailabilityStrings()[AvailabilityUnknown]
}
