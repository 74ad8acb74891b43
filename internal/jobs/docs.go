// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the dispatch service requires.
//
// # Available Jobs
//
// 1. MergeSweepJob - Runs every 15 seconds to consolidate proximate pending orders per restaurant
// 2. AssignmentRetryJob - Runs every 5 seconds to match pending deliveries with available partners
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(candidatesHandler, mergeHandler,
//		activeDeliveriesHandler, autoAssignHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failing restaurant pass or delivery does not stop the rest of the sweep
// - A pass that finds nothing to merge or no free partner is a normal outcome
// - Failed job starts will stop any already running jobs
package jobs
