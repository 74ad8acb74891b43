package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

// CreateDeliveryCommandHandler opens a new pending delivery for an order.
// The handler enforces at most one active delivery per order: if the order
// already has a non-terminal delivery, creation fails with a
// DuplicateAssignmentError and nothing is written.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, command CreateDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	active, err := deliveryRepo.GetActiveByOrderID(ctx, command.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if active != nil {
		return errs.NewDuplicateAssignmentError(command.OrderID().String(), active.ID().String())
	}

	aggregate, err := delivery.NewDelivery(command.DeliveryID(), command.OrderID(),
		command.Pickup(), command.Dropoff(), time.Now())
	if err != nil {
		return err
	}

	if err := deliveryRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
