package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetMergeCandidateRestaurantsQueryIsNotConstructed = errors.New(
	"GetMergeCandidateRestaurantsQuery must be created via NewGetMergeCandidateRestaurantsQuery constructor",
)

// GetMergeCandidateRestaurantsQuery retrieves the restaurants that currently
// have unmerged pending orders. This is the input of the periodic merge sweep:
// one consolidation pass runs per returned restaurant.
type GetMergeCandidateRestaurantsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetMergeCandidateRestaurantsQuery creates a query for merge sweep input.
func NewGetMergeCandidateRestaurantsQuery() GetMergeCandidateRestaurantsQuery {
	return GetMergeCandidateRestaurantsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetMergeCandidateRestaurantsQueryIsNotConstructed if validation fails.
func (q GetMergeCandidateRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrGetMergeCandidateRestaurantsQueryIsNotConstructed)
}

// GetMergeCandidateRestaurantsQueryResponse represents one restaurant with
// consolidation work to do.
type GetMergeCandidateRestaurantsQueryResponse struct {
	RestaurantID kernel.UUID
}
