package partnerrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a new GORM partner repository.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new partner to the database at version 0.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.DeliveryPartner) error {
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

// Update saves an existing partner using optimistic locking. The write is
// conditional on the stored version still matching the version the aggregate
// was loaded with; a concurrent writer makes the condition fail and the caller
// must reload and retry.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("partner",
			fmt.Errorf("stored version does not match %d", aggregate.Version()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInBoundingBox retrieves the assignment candidates inside the box:
// active, verified partners currently AVAILABLE whose stored coordinates fall
// within the latitude/longitude ranges. The box is a superset of the search
// circle, so callers apply any precise distance check themselves.
//
// Example:
//
//	box, err := kernel.NewBoundingBox(pickup, radiusKm)
//	if err != nil {
//		return err
//	}
//	candidates, err := repo.GetAllInBoundingBox(ctx, box)
//	if err != nil {
//		return fmt.Errorf("failed to get candidates: %w", err)
//	}
func (r *GormPartnerRepository) GetAllInBoundingBox(
	ctx context.Context,
	box kernel.BoundingBox,
) ([]*partner.DeliveryPartner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
			box.MinLat, box.MaxLat, box.MinLon, box.MaxLon).
		Where("availability = ? AND active AND verified", partner.Available.String()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	partners := make([]*partner.DeliveryPartner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}
