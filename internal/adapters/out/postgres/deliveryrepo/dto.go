// Package deliveryrepo provides data transfer objects and mapping functions for
// delivery persistence. This package implements the repository pattern for the
// delivery domain aggregate, handling the conversion between domain entities and
// database representations including the tracking event history.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Maps delivery domain entities to relational database tables with indexing for
// efficient querying by order and status.
type DeliveryDTO struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID          `gorm:"type:uuid;not null;index"`
	PartnerID          *uuid.UUID         `gorm:"type:uuid;index"`
	Pickup             GeoPointDTO        `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff            GeoPointDTO        `gorm:"embedded;embeddedPrefix:dropoff_"`
	Status             string             `gorm:"type:varchar(16);not null;index"`
	CancellationReason string             `gorm:"type:varchar(255)"`
	CreatedAt          time.Time          `gorm:"not null"`
	AssignedAt         *time.Time         `gorm:""`
	PickedUpAt         *time.Time         `gorm:""`
	CompletedAt        *time.Time         `gorm:""`
	Events             []TrackingEventDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// GeoPointDTO represents embedded pickup or drop-off coordinates within the
// delivery table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// TrackingEventDTO represents a single entry of a delivery's tracking history.
// Links to the delivery via foreign key; rows are append-only. Latitude and
// Longitude are null for transitions recorded without a courier position.
type TrackingEventDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(16);not null"`
	OccurredAt time.Time `gorm:"not null"`
	Latitude   *float64  `gorm:"type:double precision"`
	Longitude  *float64  `gorm:"type:double precision"`
	Note       string    `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for tracking event entities.
// Overrides GORM's default naming convention to use "delivery_tracking_events".
func (TrackingEventDTO) TableName() string {
	return "delivery_tracking_events"
}

// fromDomain converts a delivery domain aggregate to its database representation.
// Maps all delivery attributes including the full tracking history.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	deliveryID := aggregate.ID().Bytes()

	var partnerID *uuid.UUID
	if id := aggregate.PartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	events := make([]TrackingEventDTO, 0, len(aggregate.Events()))
	for _, event := range aggregate.Events() {
		eventDto := TrackingEventDTO{
			DeliveryID: deliveryID,
			Status:     event.Status.String(),
			OccurredAt: event.OccurredAt,
			Note:       event.Note,
		}
		if event.Location != nil {
			lat := event.Location.Latitude()
			lon := event.Location.Longitude()
			eventDto.Latitude = &lat
			eventDto.Longitude = &lon
		}
		events = append(events, eventDto)
	}

	return DeliveryDTO{
		ID:        deliveryID,
		OrderID:   aggregate.OrderID().Bytes(),
		PartnerID: partnerID,
		Pickup: GeoPointDTO{
			Latitude:  aggregate.Pickup().Latitude(),
			Longitude: aggregate.Pickup().Longitude(),
		},
		Dropoff: GeoPointDTO{
			Latitude:  aggregate.Dropoff().Latitude(),
			Longitude: aggregate.Dropoff().Longitude(),
		},
		Status:             aggregate.Status().String(),
		CancellationReason: aggregate.CancellationReason(),
		CreatedAt:          aggregate.CreatedAt(),
		AssignedAt:         aggregate.AssignedAt(),
		PickedUpAt:         aggregate.PickedUpAt(),
		CompletedAt:        aggregate.CompletedAt(),
		Events:             events,
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including tracking history using
// RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewGeoPoint(dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	events := make([]delivery.TrackingEvent, 0, len(dto.Events))
	for _, eventDto := range dto.Events {
		event, eventErr := trackingEventToDomain(eventDto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		partnerID,
		pickup,
		dropoff,
		status,
		dto.CancellationReason,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.CompletedAt,
		events,
	)
}

// trackingEventToDomain converts a tracking event DTO to its domain value.
func trackingEventToDomain(dto TrackingEventDTO) (delivery.TrackingEvent, error) {
	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return delivery.TrackingEvent{}, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return delivery.TrackingEvent{}, locErr
		}
		location = &point
	}

	return delivery.TrackingEvent{
		Status:     status,
		OccurredAt: dto.OccurredAt,
		Location:   location,
		Note:       dto.Note,
	}, nil
}
