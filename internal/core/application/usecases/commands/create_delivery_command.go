package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand requests a new pending delivery for an order.
// The pickup point is the restaurant, the drop-off point the customer address.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	orderID    kernel.UUID
	pickup     kernel.GeoPoint
	dropoff    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to open a delivery for an order.
// Validates identifiers and both coordinates.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	orderID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setOrderID(orderID),
		command.setPickup(pickup),
		command.setDropoff(dropoff),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OrderID returns the order being fulfilled.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Pickup returns the restaurant location.
func (c CreateDeliveryCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// Dropoff returns the customer location.
func (c CreateDeliveryCommand) Dropoff() kernel.GeoPoint {
	return c.dropoff
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateDeliveryCommand) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateDeliveryCommand) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	c.dropoff = dropoff
	return nil
}
