package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler applies a lifecycle transition to a
// delivery. The transition is validated by the aggregate against the allowed
// transition table; anything else fails with an InvalidStateTransitionError
// and the delivery is left unchanged.
//
// Assignment is not reachable through this handler: attaching a partner also
// touches the partner aggregate and goes through AssignDeliveryCommand.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command and returns the updated delivery.
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context, command UpdateDeliveryStatusCommand,
) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err := h.applyTransition(aggregate, command); err != nil {
		return nil, err
	}

	if err := deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// applyTransition maps the target status onto the aggregate operation.
func (h UpdateDeliveryStatusCommandHandler) applyTransition(
	aggregate *delivery.Delivery, command UpdateDeliveryStatusCommand,
) error {
	now := time.Now()

	switch command.Status() {
	case delivery.Accepted:
		return aggregate.Accept(now)
	case delivery.PickedUp:
		return aggregate.MarkPickedUp(now)
	case delivery.InTransit:
		return aggregate.MarkInTransit(now)
	case delivery.Delivered:
		return aggregate.Complete(now)
	case delivery.Cancelled:
		return aggregate.Cancel(command.Note(), now)
	case delivery.Failed:
		return aggregate.Fail(command.Note(), now)
	case delivery.Returned:
		return aggregate.Return(command.Note(), now)
	default:
		return errs.NewInvalidStateTransitionError("delivery",
			aggregate.Status().String(), command.Status().String())
	}
}
