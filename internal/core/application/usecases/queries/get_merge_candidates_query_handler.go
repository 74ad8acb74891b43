package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMergeCandidateRestaurantsQueryHandler retrieves the restaurants with
// unmerged pending orders from the database.
type GetMergeCandidateRestaurantsQueryHandler struct {
	db *gorm.DB
}

// NewGetMergeCandidateRestaurantsQueryHandler creates a handler for merge sweep
// input queries. Requires a GORM database connection for query execution.
func NewGetMergeCandidateRestaurantsQueryHandler(db *gorm.DB) GetMergeCandidateRestaurantsQueryHandler {
	return GetMergeCandidateRestaurantsQueryHandler{db: db}
}

// Handle executes the query to retrieve each restaurant that has at least one
// unmerged pending order.
func (h GetMergeCandidateRestaurantsQueryHandler) Handle(
	ctx context.Context,
	query GetMergeCandidateRestaurantsQuery,
) ([]GetMergeCandidateRestaurantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	restaurants := make([]GetMergeCandidateRestaurantsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT restaurant_id
		FROM orders
		WHERE status = ? AND merged = false
		ORDER BY restaurant_id
	`, int(order.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID

		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		restaurantID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		restaurants = append(restaurants, GetMergeCandidateRestaurantsQueryResponse{
			RestaurantID: restaurantID,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return restaurants, nil
}
