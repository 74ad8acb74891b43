package commands

import (
	"context"
)

// UpdatePartnerLocationCommandHandler persists a reported partner position.
// Runs through the optimistic-concurrency path like every partner write, so a
// position report racing an assignment loses cleanly and can simply be retried
// on the next report.
type UpdatePartnerLocationCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewUpdatePartnerLocationCommandHandler creates a handler for position reports.
func NewUpdatePartnerLocationCommandHandler(uowFactory PartnerUoWFactory) UpdatePartnerLocationCommandHandler {
	return UpdatePartnerLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location update command.
func (h UpdatePartnerLocationCommandHandler) Handle(
	ctx context.Context, command UpdatePartnerLocationCommand,
) error {
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

	partnerRepo := uow.PartnerRepository()

	aggregate, err := partnerRepo.Get(ctx, command.PartnerID())
	if err != nil {
		return err
	}

	if err := aggregate.MoveTo(command.Location()); err != nil {
		return err
	}

	if err := partnerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
