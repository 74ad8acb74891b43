package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAutoAssignDeliveryCommandIsNotConstructed = errors.New(
	"AutoAssignDeliveryCommand must be created via NewAutoAssignDeliveryCommand constructor",
)

// AutoAssignDeliveryCommand requests automatic partner selection and assignment
// for a pending delivery: locate partners around the pickup point, rank them,
// and assign the best one.
type AutoAssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	radiusKm   float64
	minRating  float64

	guard guard.ConstructorGuard
}

// NewAutoAssignDeliveryCommand creates a command to auto-assign a delivery.
// A non-positive radius falls back to the default partner search radius; the
// minimum rating must lie within the valid rating range.
func NewAutoAssignDeliveryCommand(
	deliveryID kernel.UUID, radiusKm float64, minRating float64,
) (AutoAssignDeliveryCommand, error) {
	command := AutoAssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setRadiusKm(radiusKm),
		command.setMinRating(minRating),
	); err != nil {
		return AutoAssignDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAutoAssignDeliveryCommandIsNotConstructed if validation fails.
func (c AutoAssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to assign.
func (c AutoAssignDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RadiusKm returns the partner search radius around the pickup point.
func (c AutoAssignDeliveryCommand) RadiusKm() float64 {
	return c.radiusKm
}

// MinRating returns the minimum partner rating to consider.
func (c AutoAssignDeliveryCommand) MinRating() float64 {
	return c.minRating
}

func (c *AutoAssignDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AutoAssignDeliveryCommand) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		radiusKm = partner.DefaultDeliveryRadiusKm
	}

	c.radiusKm = radiusKm
	return nil
}

func (c *AutoAssignDeliveryCommand) setMinRating(minRating float64) error {
	if minRating < partner.RatingMin || minRating > partner.RatingMax {
		return errs.NewValueIsOutOfRangeError("minRating", minRating,
			partner.RatingMin, partner.RatingMax)
	}

	c.minRating = minRating
	return nil
}
