package errs

import (
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is.
var (
	// ErrValueIsRequired indicates a required value was not provided.
	ErrValueIsRequired = fmt.Errorf("value is required")

	// ErrValueIsInvalid indicates a value failed validation.
	ErrValueIsInvalid = fmt.Errorf("value is invalid")

	// ErrValueIsOutOfRange indicates a value is outside its allowed bounds.
	ErrValueIsOutOfRange = fmt.Errorf("value is out of range")

	// ErrVersionIsInvalid indicates an optimistic-concurrency version check failed.
	ErrVersionIsInvalid = fmt.Errorf("version is invalid")

	// ErrObjectNotFound indicates a referenced entity does not exist.
	ErrObjectNotFound = fmt.Errorf("object not found")

	// ErrInvalidStateTransition indicates a requested status change is not
	// present in the entity's allowed transition table.
	ErrInvalidStateTransition = fmt.Errorf("invalid state transition")

	// ErrCapacityExceeded indicates a delivery partner has no spare
	// assignment slots for another order.
	ErrCapacityExceeded = fmt.Errorf("capacity exceeded")

	// ErrDuplicateAssignment indicates an order already has a non-terminal
	// delivery and cannot receive another one.
	ErrDuplicateAssignment = fmt.Errorf("duplicate assignment")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError is returned when a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError with the offending
// value and its allowed bounds.
func NewValueIsOutOfRangeError(paramName string, value any, minValue any, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping a cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value any, minValue any, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// VersionIsInvalidError is returned when a conditional update observes a stale
// aggregate version. Callers should reload the aggregate and retry.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping a cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// ObjectNotFoundError is returned when a referenced entity cannot be found.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateTransitionError is returned when a status change is rejected by
// the entity's transition table. The entity is left unchanged.
type InvalidStateTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidStateTransitionError creates an InvalidStateTransitionError describing
// the rejected transition.
func NewInvalidStateTransitionError(entity string, from string, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidStateTransition, e.Entity, e.From, e.To))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// CapacityExceededError is returned when a delivery partner is already carrying
// their maximum number of concurrent orders.
type CapacityExceededError struct {
	PartnerID string
	Capacity  int
}

// NewCapacityExceededError creates a CapacityExceededError for the given partner.
func NewCapacityExceededError(partnerID string, capacity int) *CapacityExceededError {
	return &CapacityExceededError{PartnerID: partnerID, Capacity: capacity}
}

func (e *CapacityExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: partner %s is at maximum concurrent orders (%d)",
		ErrCapacityExceeded, e.PartnerID, e.Capacity))
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// DuplicateAssignmentError is returned when an order already has a delivery in a
// non-terminal status and a second delivery is requested for it.
type DuplicateAssignmentError struct {
	OrderID    string
	DeliveryID string
}

// NewDuplicateAssignmentError creates a DuplicateAssignmentError for the given order.
func NewDuplicateAssignmentError(orderID string, deliveryID string) *DuplicateAssignmentError {
	return &DuplicateAssignmentError{OrderID: orderID, DeliveryID: deliveryID}
}

func (e *DuplicateAssignmentError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s already has active delivery %s",
		ErrDuplicateAssignment, e.OrderID, e.DeliveryID))
}

func (e *DuplicateAssignmentError) Unwrap() error {
	return ErrDuplicateAssignment
}
