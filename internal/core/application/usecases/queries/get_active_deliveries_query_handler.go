package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves in-flight deliveries from the database.
// Filters out terminal deliveries to provide active dispatch workload visibility.
//
// Example:
//
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//	query := NewGetActiveDeliveriesQuery()
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active deliveries: %v", err)
//	    return err
//	}
//
//	fmt.Printf("%d deliveries in flight\n", len(active))
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all non-terminal deliveries.
// Results are sorted by creation time, oldest first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	sqlQuery := `
		SELECT
			id,
			order_id,
			partner_id,
			status,
			pickup_latitude,
			pickup_longitude,
			dropoff_latitude,
			dropoff_longitude,
			created_at
		FROM deliveries
		WHERE status NOT IN (?, ?, ?, ?)
	`
	args := []any{
		delivery.Delivered.String(), delivery.Cancelled.String(),
		delivery.Failed.String(), delivery.Returned.String(),
	}

	if query.PartnerID() != nil {
		sqlQuery += ` AND partner_id = ?`
		args = append(args, query.PartnerID().Bytes())
	}

	sqlQuery += ` ORDER BY created_at`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var pickupLat, pickupLon, dropoffLat, dropoffLon float64
		var id, orderID uuid.UUID
		var partnerID uuid.NullUUID
		var status sql.NullString

		err = rows.Scan(
			&id,
			&orderID,
			&partnerID,
			&status,
			&pickupLat,
			&pickupLon,
			&dropoffLat,
			&dropoffLon,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		deliveryOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = deliveryOrderID

		if partnerID.Valid {
			deliveryPartnerID, idErr := kernel.UUIDFromBytes(partnerID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.PartnerID = &deliveryPartnerID
		}

		resp.Status = status.String

		pickup, locErr := kernel.NewGeoPoint(pickupLat, pickupLon)
		if locErr != nil {
			return nil, locErr
		}
		resp.Pickup = pickup

		dropoff, locErr := kernel.NewGeoPoint(dropoffLat, dropoffLon)
		if locErr != nil {
			return nil, locErr
		}
		resp.Dropoff = dropoff

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
