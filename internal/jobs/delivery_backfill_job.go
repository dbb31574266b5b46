package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryBackfillJob periodically creates pending delivery records for
// confirmed orders that lack one. Checkout normally creates the delivery
// with the order; the backfill heals gaps left by older orders or failed
// follow-ups.
type DeliveryBackfillJob struct {
	handler commands.BackfillDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryBackfillJob creates the backfill job around its command
// handler.
func NewDeliveryBackfillJob(
	handler commands.BackfillDeliveriesCommandHandler,
	logger *slog.Logger,
) *DeliveryBackfillJob {
	return &DeliveryBackfillJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "delivery_backfill_job"),
	}
}

// Start schedules the backfill to run once a minute.
func (j *DeliveryBackfillJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		created, err := j.handler.Handle(ctx, commands.NewBackfillDeliveriesCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery backfill job failed", "error", err)
			return
		}
		if created > 0 {
			j.logger.InfoContext(ctx, "Backfilled deliveries for confirmed orders",
				"created", created)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery backfill job started (running every minute)")
	return nil
}

// Stop stops the backfill job.
func (j *DeliveryBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery backfill job stopped")
}
