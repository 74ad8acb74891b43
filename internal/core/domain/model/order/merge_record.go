package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrMergeRecordIsNotConstructed is returned when a MergeRecord instance was not
// created through the NewMergeRecord or RestoreMergeRecord factory methods.
var ErrMergeRecordIsNotConstructed = errors.New(
	"MergeRecord must be created via NewMergeRecord or RestoreMergeRecord constructors")

// MergeRecord is the immutable audit entry describing a committed merge group:
// which orders were grouped, at which restaurant, and the efficiency score that
// justified the merge. Records are written once and never updated.
type MergeRecord struct {
	// groupID is the unique identifier of the merge group
	groupID kernel.UUID

	// orderIDs lists all members of the group
	orderIDs []kernel.UUID

	// restaurantID is the common pickup restaurant
	restaurantID kernel.UUID

	// score is the merge efficiency score at decision time, in [0, 1]
	score float64

	// createdAt is the commit timestamp
	createdAt time.Time

	// guard ensures the record was properly constructed
	guard guard.ConstructorGuard
}

// NewMergeRecord creates the audit record for a committed merge group.
//
// Validation rules:
//   - groupID and restaurantID must be valid identifiers
//   - orderIDs must contain at least two valid, distinct identifiers
//   - score must be within [0, 1]
//   - createdAt must not be zero
func NewMergeRecord(
	groupID kernel.UUID,
	orderIDs []kernel.UUID,
	restaurantID kernel.UUID,
	score float64,
	createdAt time.Time,
) (*MergeRecord, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}
	if len(orderIDs) < 2 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderIDs",
			errors.New("merge group must contain at least two orders"))
	}
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("orderIDs",
				errors.New("merge group must not contain duplicate orders"))
		}
		seen[id] = struct{}{}
	}
	if score < 0 || score > 1 {
		return nil, errs.NewValueIsOutOfRangeError("score", score, 0, 1)
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &MergeRecord{
		groupID:      groupID,
		orderIDs:     append([]kernel.UUID(nil), orderIDs...),
		restaurantID: restaurantID,
		score:        score,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreMergeRecord reconstructs a MergeRecord from persistent storage.
func RestoreMergeRecord(
	groupID kernel.UUID,
	orderIDs []kernel.UUID,
	restaurantID kernel.UUID,
	score float64,
	createdAt time.Time,
) (*MergeRecord, error) {
	return NewMergeRecord(groupID, orderIDs, restaurantID, score, createdAt)
}

// Validate ensures the MergeRecord instance was properly constructed.
func (m *MergeRecord) Validate() error {
	if m == nil {
		return ErrMergeRecordIsNotConstructed
	}
	return m.guard.Validate(ErrMergeRecordIsNotConstructed)
}

// GroupID returns the merge group's unique identifier.
func (m *MergeRecord) GroupID() kernel.UUID {
	return m.groupID
}

// OrderIDs returns the members of the merge group.
func (m *MergeRecord) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), m.orderIDs...)
}

// RestaurantID returns the common pickup restaurant.
func (m *MergeRecord) RestaurantID() kernel.UUID {
	return m.restaurantID
}

// Score returns the merge efficiency score recorded at decision time.
func (m *MergeRecord) Score() float64 {
	return m.score
}

// CreatedAt returns the commit timestamp.
func (m *MergeRecord) CreatedAt() time.Time {
	return m.createdAt
}
