// Package mergerepo provides data transfer objects and mapping functions for
// merge record persistence. Merge records are an append-only audit trail, so the
// package implements only insert and read operations.
package mergerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// MergeRecordDTO represents the database structure for persisting merge records.
type MergeRecordDTO struct {
	GroupID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderIDs     pq.StringArray `gorm:"type:text[];not null"`
	RestaurantID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Score        float64        `gorm:"type:double precision;not null"`
	CreatedAt    time.Time      `gorm:"not null"`
}

// TableName specifies the database table name for merge record entities.
// Overrides GORM's default naming convention to use "merge_records".
func (MergeRecordDTO) TableName() string {
	return "merge_records"
}

// fromDomain converts a merge record domain object to its database representation.
func fromDomain(record *order.MergeRecord) MergeRecordDTO {
	orderIDs := make(pq.StringArray, 0, len(record.OrderIDs()))
	for _, id := range record.OrderIDs() {
		orderIDs = append(orderIDs, id.String())
	}

	return MergeRecordDTO{
		GroupID:      record.GroupID().Bytes(),
		OrderIDs:     orderIDs,
		RestaurantID: record.RestaurantID().Bytes(),
		Score:        record.Score(),
		CreatedAt:    record.CreatedAt(),
	}
}

// toDomain converts a database DTO to a merge record domain object.
func toDomain(dto MergeRecordDTO) (*order.MergeRecord, error) {
	groupID, err := kernel.UUIDFromBytes(dto.GroupID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.OrderIDs))
	for _, raw := range dto.OrderIDs {
		orderID, orderErr := kernel.UUIDFromString(raw)
		if orderErr != nil {
			return nil, orderErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	return order.RestoreMergeRecord(groupID, orderIDs, restaurantID, dto.Score, dto.CreatedAt)
}
