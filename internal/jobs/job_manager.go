package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	mergeSweepJob      *MergeSweepJob
	assignmentRetryJob *AssignmentRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up job execution.
func NewJobManager(
	candidatesHandler queries.GetMergeCandidateRestaurantsQueryHandler,
	mergeHandler commands.ClusterAndMergeCommandHandler,
	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	autoAssignHandler commands.AutoAssignDeliveryCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		mergeSweepJob:      NewMergeSweepJob(candidatesHandler, mergeHandler, logger),
		assignmentRetryJob: NewAssignmentRetryJob(activeDeliveriesHandler, autoAssignHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.mergeSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start merge sweep job: %w", err)
	}

	if err := jm.assignmentRetryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.mergeSweepJob.Stop()
		return fmt.Errorf("failed to start assignment retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.mergeSweepJob.Stop()
	jm.assignmentRetryJob.Stop()
}
