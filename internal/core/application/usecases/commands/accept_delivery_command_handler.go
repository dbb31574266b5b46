package commands

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
)

// AcceptDeliveryCommandHandler assigns a pending delivery to the accepting
// driver. The decisive unassigned-check happens in the repository as a
// conditional write, so a stale in-memory read cannot hand the same
// delivery to two drivers.
type AcceptDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery acceptance.
func NewAcceptDeliveryCommandHandler(uowFactory DeliveryUoWFactory) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle loads the delivery, applies the acceptance on the aggregate, and
// persists it through the conditional write. Returns the updated delivery,
// or delivery.ErrAlreadyAssigned when the caller lost the race.
func (h AcceptDeliveryCommandHandler) Handle(
	ctx context.Context,
	command AcceptDeliveryCommand,
) (*delivery.Delivery, error) {
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

	repo := uow.DeliveryRepository()

	target, err := repo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = target.Accept(command.DriverID()); err != nil {
		return nil, err
	}

	if err = repo.Accept(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
