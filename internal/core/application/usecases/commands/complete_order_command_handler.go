package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
)

// CompleteOrderCommandHandler releases a completed order from its partner's
// workload: the order leaves the active list, the completion counters update,
// and a Busy partner dropping below capacity becomes Available again. A
// delivery-completed event is published after the transaction, best effort.
type CompleteOrderCommandHandler struct {
	uowFactory PartnerUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory PartnerUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the completion command and returns the updated partner.
func (h CompleteOrderCommandHandler) Handle(
	ctx context.Context, command CompleteOrderCommand,
) (*partner.DeliveryPartner, error) {
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

	partnerRepo := uow.PartnerRepository()

	aggregate, err := partnerRepo.Get(ctx, command.PartnerID())
	if err != nil {
		return nil, err
	}

	if err := aggregate.CompleteOrder(command.OrderID()); err != nil {
		return nil, err
	}

	if err := partnerRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := ports.DeliveryEvent{
		OrderID:    command.OrderID().String(),
		PartnerID:  aggregate.ID().String(),
		Status:     "COMPLETED",
		OccurredAt: time.Now(),
	}
	if err := h.publisher.Publish(ctx, ports.TopicDeliveryCompleted, event); err != nil {
		h.log.WarnContext(ctx, "failed to publish delivery-completed event",
			slog.String("orderId", event.OrderID), slog.Any("error", err))
	}

	return aggregate, nil
}
