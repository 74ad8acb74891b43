package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// MergeSweepJob manages the scheduled consolidation of pending orders.
// Runs every 15 seconds and executes one clustering pass per restaurant that
// currently has unmerged pending orders.
type MergeSweepJob struct {
	candidatesHandler queries.GetMergeCandidateRestaurantsQueryHandler
	mergeHandler      commands.ClusterAndMergeCommandHandler
	cron              *cron.Cron
	logger            *slog.Logger
}

// NewMergeSweepJob creates a new job for order consolidation sweeps.
func NewMergeSweepJob(
	candidatesHandler queries.GetMergeCandidateRestaurantsQueryHandler,
	mergeHandler commands.ClusterAndMergeCommandHandler,
	logger *slog.Logger,
) *MergeSweepJob {
	return &MergeSweepJob{
		candidatesHandler: candidatesHandler,
		mergeHandler:      mergeHandler,
		cron:              cron.New(cron.WithSeconds()),
		logger:            logger.With("component", "merge_sweep_job"),
	}
}

// Start begins the merge sweep job to run every 15 seconds.
func (j *MergeSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Merge sweep job started (running every 15 seconds)")
	return nil
}

// Stop stops the merge sweep job.
func (j *MergeSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Merge sweep job stopped")
}

// run executes one full sweep. A restaurant whose pass fails does not stop the
// sweep for the remaining restaurants.
func (j *MergeSweepJob) run() {
	ctx := context.Background()

	candidates, err := j.candidatesHandler.Handle(ctx, queries.NewGetMergeCandidateRestaurantsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Merge sweep failed to list candidate restaurants", "error", err)
		return
	}

	for _, candidate := range candidates {
		command, err := commands.NewClusterAndMergeCommand(candidate.RestaurantID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Merge sweep failed to build command",
				"restaurantId", candidate.RestaurantID.String(), "error", err)
			continue
		}

		records, err := j.mergeHandler.Handle(ctx, command)
		if err != nil {
			j.logger.ErrorContext(ctx, "Merge sweep pass failed",
				"restaurantId", candidate.RestaurantID.String(), "error", err)
			continue
		}

		if len(records) > 0 {
			j.logger.InfoContext(ctx, "Merge sweep committed merges",
				"restaurantId", candidate.RestaurantID.String(), "merges", len(records))
		}
	}
}
