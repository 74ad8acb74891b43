package mergerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMergeRecordRepository implements MergeRecordRepository using GORM.
type GormMergeRecordRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMergeRecordRepository creates a new GORM merge record repository.
func NewGormMergeRecordRepository(db *gorm.DB, tracker aggregateTracker) *GormMergeRecordRepository {
	return &GormMergeRecordRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new merge record to the database.
func (r *GormMergeRecordRepository) Add(ctx context.Context, record *order.MergeRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.GroupID(), record)
	return nil
}

// Get retrieves a merge record by its group identifier.
func (r *GormMergeRecordRepository) Get(ctx context.Context, groupID kernel.UUID) (*order.MergeRecord, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}

	var dto MergeRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "group_id = ?", groupID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mergeRecord", groupID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRestaurant retrieves the merge records created for a restaurant,
// oldest first.
func (r *GormMergeRecordRepository) GetAllByRestaurant(
	ctx context.Context,
	restaurantID kernel.UUID,
) ([]*order.MergeRecord, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MergeRecordDTO
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*order.MergeRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
