package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryBackfillJob *DeliveryBackfillJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	backfillHandler commands.BackfillDeliveriesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryBackfillJob: NewDeliveryBackfillJob(backfillHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryBackfillJob.Stop()
}
