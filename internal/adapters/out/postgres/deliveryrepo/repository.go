package deliveryrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery and its initial tracking event to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery. The write is conditional on the stored
// status still matching the status the aggregate was loaded with, so two
// concurrent transitions on the same delivery cannot both succeed. The tracking
// history is rewritten alongside the row.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.LoadedStatus().String()).
		Select("*").
		Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("delivery",
			fmt.Errorf("stored status does not match %s", aggregate.LoadedStatus()))
	}

	if err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).
		Delete(&TrackingEventDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Events) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Events).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID, including its tracking history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at, id") }).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrderID retrieves the non-terminal delivery for an order, if one
// exists. At most one such delivery exists at a time; this is how the single
// active delivery per order rule is checked.
func (r *GormDeliveryRepository) GetActiveByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at, id") }).
		Where("order_id = ? AND status NOT IN (?, ?, ?, ?)", orderID.Bytes(),
			delivery.Delivered.String(), delivery.Cancelled.String(),
			delivery.Failed.String(), delivery.Returned.String()).
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves the deliveries still waiting for a partner,
// oldest first. This is the input of the assignment retry sweep.
func (r *GormDeliveryRepository) GetAllPending(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at, id") }).
		Where("status = ?", delivery.Pending.String()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
