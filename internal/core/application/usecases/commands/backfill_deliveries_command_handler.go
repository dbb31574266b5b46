package commands

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// BackfillDeliveriesCommandHandler creates pending deliveries for confirmed
// orders that lack one, in a single transaction per run.
type BackfillDeliveriesCommandHandler struct {
	uowFactory UoWFactory
}

// NewBackfillDeliveriesCommandHandler creates a handler for the delivery
// backfill.
func NewBackfillDeliveriesCommandHandler(uowFactory UoWFactory) BackfillDeliveriesCommandHandler {
	return BackfillDeliveriesCommandHandler{uowFactory: uowFactory}
}

// Handle finds confirmed orders without deliveries and creates an
// unassigned pending delivery for each. Returns the number created.
func (h BackfillDeliveriesCommandHandler) Handle(
	ctx context.Context,
	command BackfillDeliveriesCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetConfirmedWithoutDelivery(ctx)
	if err != nil {
		return 0, err
	}

	deliveryRepo := uow.DeliveryRepository()
	created := 0
	for _, o := range orders {
		d, newErr := delivery.NewDelivery(kernel.NewUUID(), o.ID())
		if newErr != nil {
			return 0, newErr
		}
		if err = deliveryRepo.Add(ctx, d); err != nil {
			return 0, err
		}
		created++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return created, nil
}
