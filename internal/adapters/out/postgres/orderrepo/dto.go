// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by restaurant and merge state.
type OrderDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID      `gorm:"type:uuid;not null;index"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null"`
	Dropoff      GeoPointDTO    `gorm:"embedded;embeddedPrefix:dropoff_"`
	PlacedAt     time.Time      `gorm:"not null;index"`
	Status       int            `gorm:"type:int;not null;index"`
	Merged       bool           `gorm:"not null"`
	MergeGroupID *uuid.UUID     `gorm:"type:uuid;index"`
	MergedWith   pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents the embedded drop-off coordinates within the order table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the merge bookkeeping fields.
func fromDomain(aggregate *order.Order) OrderDTO {
	var mergeGroupID *uuid.UUID
	if id := aggregate.MergeGroupID(); id != nil {
		raw := id.Bytes()
		mergeGroupID = &raw
	}

	mergedWith := make(pq.StringArray, 0, len(aggregate.MergedWith()))
	for _, id := range aggregate.MergedWith() {
		mergedWith = append(mergedWith, id.String())
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		Dropoff: GeoPointDTO{
			Latitude:  aggregate.Dropoff().Latitude(),
			Longitude: aggregate.Dropoff().Longitude(),
		},
		PlacedAt:     aggregate.PlacedAt(),
		Status:       int(aggregate.Status()),
		Merged:       aggregate.Merged(),
		MergeGroupID: mergeGroupID,
		MergedWith:   mergedWith,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including merge state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewGeoPoint(dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	var mergeGroupID *kernel.UUID
	if dto.MergeGroupID != nil {
		gID, groupErr := kernel.UUIDFromBytes((*dto.MergeGroupID)[:])
		if groupErr != nil {
			return nil, groupErr
		}

		mergeGroupID = &gID
	}

	mergedWith := make([]kernel.UUID, 0, len(dto.MergedWith))
	for _, raw := range dto.MergedWith {
		sibling, siblingErr := kernel.UUIDFromString(raw)
		if siblingErr != nil {
			return nil, siblingErr
		}
		mergedWith = append(mergedWith, sibling)
	}

	return order.RestoreOrder(id, restaurantID, customerID, dropoff, dto.PlacedAt,
		order.Status(dto.Status), mergeGroupID, mergedWith)
}
