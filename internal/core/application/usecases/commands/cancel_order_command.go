package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// CancelOrderCommand records the cancellation of an order currently carried by
// a partner: the order leaves the active workload and the cancellation counter
// updates. A reason is mandatory.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	orderID   kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to record an order cancellation.
func NewCancelOrderCommand(partnerID, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPartnerID(partnerID),
		command.setOrderID(orderID),
		command.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// PartnerID returns the partner carrying the order.
func (c CancelOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// OrderID returns the cancelled order.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
