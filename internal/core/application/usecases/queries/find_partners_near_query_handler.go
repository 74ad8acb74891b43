package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindPartnersNearQueryHandler retrieves available partners around a point.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewFindPartnersNearQueryHandler(db)
//	query, _ := NewFindPartnersNearQuery(40.71, -74.0, 10, 4.0)
//
//	partners, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to find partners: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d partners\n", len(partners))
type FindPartnersNearQueryHandler struct {
	db *gorm.DB
}

// NewFindPartnersNearQueryHandler creates a handler for nearby partner queries.
// Requires a GORM database connection for query execution.
func NewFindPartnersNearQueryHandler(db *gorm.DB) FindPartnersNearQueryHandler {
	return FindPartnersNearQueryHandler{db: db}
}

// Handle executes the query to retrieve partners inside the search area.
// Returns partner read models sorted by rating, best first. The bounding-box
// superset is narrowed to the exact circle with a haversine check per row.
func (h FindPartnersNearQueryHandler) Handle(
	ctx context.Context,
	query FindPartnersNearQuery,
) ([]FindPartnersNearQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	box, err := kernel.NewBoundingBox(query.Center(), query.RadiusKm())
	if err != nil {
		return nil, err
	}

	partners := make([]FindPartnersNearQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			latitude,
			longitude,
			rating,
			cardinality(active_order_ids),
			total_deliveries,
			completed_deliveries
		FROM partners
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
		  AND availability = 'AVAILABLE'
		  AND active
		  AND verified
		  AND rating >= ?
		ORDER BY rating DESC, name
	`, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, query.MinRating()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p FindPartnersNearQueryResponse
		var latitude, longitude float64
		var totalDeliveries, completedDeliveries int
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&p.Name,
			&latitude,
			&longitude,
			&p.Rating,
			&p.ActiveOrderCount,
			&totalDeliveries,
			&completedDeliveries,
		)
		if err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		p.ID = partnerID

		location, locErr := kernel.NewGeoPoint(latitude, longitude)
		if locErr != nil {
			return nil, locErr
		}
		p.Location = location

		if query.Center().DistanceKm(location) > query.RadiusKm() {
			continue
		}

		if totalDeliveries > 0 {
			p.CompletionRate = float64(completedDeliveries) / float64(totalDeliveries)
		}
		partners = append(partners, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
