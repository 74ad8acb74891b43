package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"

	"github.com/robfig/cron/v3"
)

// AssignmentRetryJob manages the scheduled retry of partner assignment.
// Runs every 5 seconds and attempts auto-assignment for every delivery still
// waiting for a partner. A pass with no eligible partner is a normal outcome;
// the delivery is retried on the next tick.
type AssignmentRetryJob struct {
	activeHandler queries.GetActiveDeliveriesQueryHandler
	assignHandler commands.AutoAssignDeliveryCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewAssignmentRetryJob creates a new job for retrying partner assignment.
func NewAssignmentRetryJob(
	activeHandler queries.GetActiveDeliveriesQueryHandler,
	assignHandler commands.AutoAssignDeliveryCommandHandler,
	logger *slog.Logger,
) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		activeHandler: activeHandler,
		assignHandler: assignHandler,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "assignment_retry_job"),
	}
}

// Start begins the assignment retry job to run every 5 seconds.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment retry job started (running every 5 seconds)")
	return nil
}

// Stop stops the assignment retry job.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}

func (j *AssignmentRetryJob) run() {
	ctx := context.Background()

	active, err := j.activeHandler.Handle(ctx, queries.NewGetActiveDeliveriesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment retry failed to list deliveries", "error", err)
		return
	}

	for _, candidate := range active {
		if candidate.Status != delivery.Pending.String() {
			continue
		}

		// Zero values pick the default search radius and no rating floor.
		command, err := commands.NewAutoAssignDeliveryCommand(candidate.ID, 0, 0)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment retry failed to build command",
				"deliveryId", candidate.ID.String(), "error", err)
			continue
		}

		assigned, updated, err := j.assignHandler.Handle(ctx, command)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment retry failed",
				"deliveryId", candidate.ID.String(), "error", err)
			continue
		}

		if assigned && updated.PartnerID() != nil {
			j.logger.InfoContext(ctx, "Assignment retry matched a partner",
				"deliveryId", candidate.ID.String(),
				"partnerId", updated.PartnerID().String())
		}
	}
}
