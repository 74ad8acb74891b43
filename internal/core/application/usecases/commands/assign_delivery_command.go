package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand requests the explicit assignment of a chosen partner
// to a pending delivery.
//
// Example:
//
//	cmd, err := NewAssignDeliveryCommand(deliveryID, partnerID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	partnerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to assign a partner to a delivery.
func NewAssignDeliveryCommand(deliveryID, partnerID kernel.UUID) (AssignDeliveryCommand, error) {
	command := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setPartnerID(partnerID),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignDeliveryCommandIsNotConstructed if validation fails.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to assign.
func (c AssignDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// PartnerID returns the chosen partner.
func (c AssignDeliveryCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *AssignDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AssignDeliveryCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
