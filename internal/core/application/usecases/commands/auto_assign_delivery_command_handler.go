package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AutoAssignDeliveryCommandHandler selects and assigns the best available
// partner for a pending delivery.
//
// The pipeline runs inside one transaction: locate partners in a bounding box
// around the pickup point, rank them by rating, load, and completion rate, and
// commit assignment with the top candidate. An empty candidate set is not an
// error; the handler reports assigned=false and the delivery stays PENDING for
// a later retry.
type AutoAssignDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
	publisher  ports.EventPublisher
	ranker     services.PartnerRanker
	log        *slog.Logger
}

// NewAutoAssignDeliveryCommandHandler creates a handler for auto-assignment.
func NewAutoAssignDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory,
	publisher ports.EventPublisher,
	log *slog.Logger,
) AutoAssignDeliveryCommandHandler {
	return AutoAssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		ranker:     services.NewPartnerRanker(),
		log:        log,
	}
}

// Handle processes the auto-assignment command.
// Returns whether a partner was assigned and the updated delivery; false with
// a nil error and nil delivery means no eligible candidate was found.
func (h AutoAssignDeliveryCommandHandler) Handle(
	ctx context.Context, command AutoAssignDeliveryCommand,
) (bool, *delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return false, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	partnerRepo := uow.PartnerRepository()

	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return false, nil, err
	}

	box, err := kernel.NewBoundingBox(aggregate.Pickup(), command.RadiusKm())
	if err != nil {
		return false, nil, err
	}

	candidates, err := partnerRepo.GetAllInBoundingBox(ctx, box)
	if err != nil {
		return false, nil, err
	}

	ranked := h.ranker.Rank(candidates, command.MinRating())
	if len(ranked) == 0 {
		return false, nil, nil
	}

	best := ranked[0]
	now := time.Now()
	from := best.Location()
	if err := best.AssignOrder(aggregate.OrderID()); err != nil {
		return false, nil, err
	}
	if err := aggregate.Assign(best.ID(), &from, now); err != nil {
		return false, nil, err
	}

	if err := deliveryRepo.Update(ctx, aggregate); err != nil {
		return false, nil, err
	}
	if err := partnerRepo.Update(ctx, best); err != nil {
		return false, nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return false, nil, err
	}

	event := ports.DeliveryEvent{
		DeliveryID: aggregate.ID().String(),
		OrderID:    aggregate.OrderID().String(),
		PartnerID:  best.ID().String(),
		Status:     aggregate.Status().String(),
		OccurredAt: now,
	}
	if err := h.publisher.Publish(ctx, ports.TopicDeliveryAssigned, event); err != nil {
		h.log.WarnContext(ctx, "failed to publish delivery-assigned event",
			slog.String("deliveryId", event.DeliveryID), slog.Any("error", err))
	}

	return true, aggregate, nil
}
