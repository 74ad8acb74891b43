package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
)

// CancelOrderCommandHandler releases a cancelled order from its partner's
// workload and records the cancellation in the partner's statistics. A
// delivery-cancelled event carrying the reason is published after the
// transaction, best effort.
type CancelOrderCommandHandler struct {
	uowFactory PartnerUoWFactory
	publisher  ports.EventPublisher
	log        *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory PartnerUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

// Handle processes the cancellation command and returns the updated partner.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context, command CancelOrderCommand,
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

	if err := aggregate.CancelOrder(command.OrderID()); err != nil {
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
		Status:     "CANCELLED",
		Reason:     command.Reason(),
		OccurredAt: time.Now(),
	}
	if err := h.publisher.Publish(ctx, ports.TopicDeliveryCancelled, event); err != nil {
		h.log.WarnContext(ctx, "failed to publish delivery-cancelled event",
			slog.String("orderId", event.OrderID), slog.Any("error", err))
	}

	return aggregate, nil
}
