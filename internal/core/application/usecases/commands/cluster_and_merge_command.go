package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClusterAndMergeCommandIsNotConstructed = errors.New(
	"ClusterAndMergeCommand must be created via NewClusterAndMergeCommand constructor",
)

// ClusterAndMergeCommand requests a consolidation pass over the pending orders
// of one restaurant: clustering, scoring, and merge commits for clusters that
// clear the efficiency threshold.
//
// Example:
//
//	cmd, err := NewClusterAndMergeCommand(restaurantID)
//	if err != nil {
//	    return err
//	}
//	records, err := handler.Handle(ctx, cmd)
type ClusterAndMergeCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClusterAndMergeCommand creates a command to run consolidation for a restaurant.
func NewClusterAndMergeCommand(restaurantID kernel.UUID) (ClusterAndMergeCommand, error) {
	command := ClusterAndMergeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRestaurantID(restaurantID); err != nil {
		return ClusterAndMergeCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClusterAndMergeCommandIsNotConstructed if validation fails.
func (c ClusterAndMergeCommand) Validate() error {
	return c.guard.Validate(ErrClusterAndMergeCommandIsNotConstructed)
}

// RestaurantID returns the restaurant whose pending orders are consolidated.
func (c ClusterAndMergeCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

func (c *ClusterAndMergeCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}
