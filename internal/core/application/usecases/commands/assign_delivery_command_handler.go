package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// AssignDeliveryCommandHandler commits the assignment of a partner to a
// pending delivery.
//
// Preconditions, checked inside one transaction:
//   - the delivery exists and is still PENDING
//   - the partner exists, is accepting work, and has spare capacity
//
// Both aggregates are updated together or not at all. The delivery update is
// conditional on the stored status still being PENDING and the partner update
// carries an optimistic-lock version, so two racing assignments of the same
// delivery (or the same last capacity slot) cannot both commit. A
// delivery-assigned event is published after the transaction, best effort.
type AssignDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for explicit assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the assignment command and returns the updated delivery.
func (h AssignDeliveryCommandHandler) Handle(
	ctx context.Context, command AssignDeliveryCommand,
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
	partnerRepo := uow.PartnerRepository()

	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	candidate, err := partnerRepo.Get(ctx, command.PartnerID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := candidate.Location()
	if err := candidate.AssignOrder(aggregate.OrderID()); err != nil {
		return nil, err
	}
	if err := aggregate.Assign(candidate.ID(), &from, now); err != nil {
		return nil, err
	}

	if err := deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}
	if err := partnerRepo.Update(ctx, candidate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publishDeliveryEvent(ctx, ports.TopicDeliveryAssigned, ports.DeliveryEvent{
		DeliveryID: aggregate.ID().String(),
		OrderID:    aggregate.OrderID().String(),
		PartnerID:  candidate.ID().String(),
		Status:     aggregate.Status().String(),
		OccurredAt: now,
	})

	return aggregate, nil
}

// publishDeliveryEvent emits a lifecycle event, logging and swallowing failures.
func (h AssignDeliveryCommandHandler) publishDeliveryEvent(
	ctx context.Context, topic string, event ports.DeliveryEvent,
) {
	if err := h.publisher.Publish(ctx, topic, event); err != nil {
		h.log.WarnContext(ctx, "failed to publish delivery event",
			slog.String("topic", topic),
			slog.String("deliveryId", event.DeliveryID),
			slog.Any("error", err))
	}
}
