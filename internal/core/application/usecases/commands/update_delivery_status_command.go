package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand requests a transition of a delivery to a new
// lifecycle status. The note is mandatory when cancelling (the cancellation
// reason) and optional annotation for failures and returns.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	status     delivery.Status
	note       string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to transition a delivery.
func NewUpdateDeliveryStatusCommand(
	deliveryID kernel.UUID, status delivery.Status, note string,
) (UpdateDeliveryStatusCommand, error) {
	command := UpdateDeliveryStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setStatus(status),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	if status == delivery.Cancelled && note == "" {
		return UpdateDeliveryStatusCommand{}, errs.NewValueIsRequiredError("note")
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryStatusCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the delivery to transition.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Status returns the target status.
func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

// Note returns the annotation attached to the transition.
func (c UpdateDeliveryStatusCommand) Note() string {
	return c.note
}

func (c *UpdateDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setStatus(status delivery.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
