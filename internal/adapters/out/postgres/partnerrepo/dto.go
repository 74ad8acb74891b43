// Package partnerrepo provides data transfer objects and mapping functions for
// delivery partner persistence. This package implements the repository pattern for
// the partner domain aggregate, handling the conversion between domain entities
// and database representations.
package partnerrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartnerDTO represents the database structure for persisting partner aggregates.
// Coordinates and availability are indexed to support the bounding-box candidate
// query. The version column backs optimistic locking.
type PartnerDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name                string         `gorm:"type:varchar(255);not null"`
	Location            GeoPointDTO    `gorm:"embedded"`
	Availability        string         `gorm:"type:varchar(16);not null;index"`
	Active              bool           `gorm:"not null"`
	Verified            bool           `gorm:"not null"`
	Rating              float64        `gorm:"type:double precision;not null"`
	TotalDeliveries     int            `gorm:"type:int;not null"`
	CompletedDeliveries int            `gorm:"type:int;not null"`
	CancelledDeliveries int            `gorm:"type:int;not null"`
	ActiveOrderIDs      pq.StringArray `gorm:"type:text[]"`
	MaxConcurrentOrders int            `gorm:"type:int;not null"`
	DeliveryRadiusKm    float64        `gorm:"type:double precision;not null"`
	Version             int            `gorm:"type:int;not null"`
}

// TableName specifies the database table name for partner entities.
// Overrides GORM's default naming convention to use "partners".
func (PartnerDTO) TableName() string {
	return "partners"
}

// GeoPointDTO represents the embedded current-position coordinates within the
// partner table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null;index"`
	Longitude float64 `gorm:"type:double precision;not null;index"`
}

// fromDomain converts a partner domain aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	activeOrderIDs := make(pq.StringArray, 0, len(aggregate.ActiveOrderIDs()))
	for _, id := range aggregate.ActiveOrderIDs() {
		activeOrderIDs = append(activeOrderIDs, id.String())
	}

	return PartnerDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
		Location: GeoPointDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		Availability:        aggregate.Availability().String(),
		Active:              aggregate.Active(),
		Verified:            aggregate.Verified(),
		Rating:              aggregate.Rating(),
		TotalDeliveries:     aggregate.TotalDeliveries(),
		CompletedDeliveries: aggregate.CompletedDeliveries(),
		CancelledDeliveries: aggregate.CancelledDeliveries(),
		ActiveOrderIDs:      activeOrderIDs,
		MaxConcurrentOrders: aggregate.MaxConcurrentOrders(),
		DeliveryRadiusKm:    aggregate.DeliveryRadiusKm(),
		Version:             aggregate.Version(),
	}
}

// toDomain converts a database DTO to a partner domain aggregate.
// Reconstructs the complete aggregate including workload state using
// RestoreDeliveryPartner.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	availability, err := partner.AvailabilityFromString(dto.Availability)
	if err != nil {
		return nil, err
	}

	activeOrderIDs := make([]kernel.UUID, 0, len(dto.ActiveOrderIDs))
	for _, raw := range dto.ActiveOrderIDs {
		orderID, orderErr := kernel.UUIDFromString(raw)
		if orderErr != nil {
			return nil, orderErr
		}
		activeOrderIDs = append(activeOrderIDs, orderID)
	}

	return partner.RestoreDeliveryPartner(
		id,
		dto.Name,
		location,
		availability,
		dto.Active,
		dto.Verified,
		dto.Rating,
		dto.TotalDeliveries,
		dto.CompletedDeliveries,
		dto.CancelledDeliveries,
		activeOrderIDs,
		dto.MaxConcurrentOrders,
		dto.DeliveryRadiusKm,
		dto.Version,
	)
}
