// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrFindPartnersNearQueryIsNotConstructed = errors.New(
	"FindPartnersNearQuery must be created via NewFindPartnersNearQuery constructor",
)

// FindPartnersNearQuery retrieves delivery partners around a pickup point.
// The search uses a bounding-box pre-filter, so results are a superset of the
// true circle; callers needing exact containment apply a distance check.
//
// Example:
//
//	query, err := NewFindPartnersNearQuery(40.71, -74.0, 10, 4.0)
//	if err != nil {
//	    return err
//	}
//	partners, err := handler.Handle(ctx, query)
type FindPartnersNearQuery struct { //nolint:recvcheck //using for validation
	center    kernel.GeoPoint
	radiusKm  float64
	minRating float64

	guard guard.ConstructorGuard
}

// NewFindPartnersNearQuery creates a query to find partners near a point.
// A non-positive radius falls back to the default search radius.
func NewFindPartnersNearQuery(lat, lon, radiusKm, minRating float64) (FindPartnersNearQuery, error) {
	center, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return FindPartnersNearQuery{}, err
	}

	if radiusKm <= 0 {
		radiusKm = partner.DefaultDeliveryRadiusKm
	}
	if minRating < partner.RatingMin || minRating > partner.RatingMax {
		return FindPartnersNearQuery{}, errs.NewValueIsOutOfRangeError("minRating", minRating,
			partner.RatingMin, partner.RatingMax)
	}

	return FindPartnersNearQuery{
		center:    center,
		radiusKm:  radiusKm,
		minRating: minRating,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindPartnersNearQueryIsNotConstructed if validation fails.
func (q FindPartnersNearQuery) Validate() error {
	return q.guard.Validate(ErrFindPartnersNearQueryIsNotConstructed)
}

// Center returns the pickup point at the center of the search.
func (q FindPartnersNearQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the search radius.
func (q FindPartnersNearQuery) RadiusKm() float64 {
	return q.radiusKm
}

// MinRating returns the minimum partner rating to include.
func (q FindPartnersNearQuery) MinRating() float64 {
	return q.minRating
}

// FindPartnersNearQueryResponse represents a partner in the read model.
type FindPartnersNearQueryResponse struct {
	ID               kernel.UUID
	Name             string
	Location         kernel.GeoPoint
	Rating           float64
	ActiveOrderCount int
	CompletionRate   float64
}
