package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand records the successful hand-off of an order by the
// partner carrying it: the order leaves the partner's active workload and the
// completion counters update.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	orderID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to record an order completion.
func NewCompleteOrderCommand(partnerID, orderID kernel.UUID) (CompleteOrderCommand, error) {
	command := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPartnerID(partnerID),
		command.setOrderID(orderID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteOrderCommandIsNotConstructed if validation fails.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// PartnerID returns the partner carrying the order.
func (c CompleteOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// OrderID returns the completed order.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CompleteOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
