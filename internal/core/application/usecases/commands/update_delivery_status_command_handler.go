package commands

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/services"
)

// UpdateDeliveryStatusCommandHandler advances a delivery through its
// lifecycle. Reaching Delivered advances the parent order to Delivered in
// the same transaction instead of relying on a separate follow-up call.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery
// status progressions.
func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{uowFactory: uowFactory}
}

// Handle authorizes the caller (assignee driver or admin), applies the
// progression, and runs the delivered cascade onto the order. Returns the
// updated delivery.
func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateDeliveryStatusCommand,
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

	deliveryRepo := uow.DeliveryRepository()

	target, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	policy := services.NewTransitionPolicy()
	if err = policy.AuthorizeDeliveryTransition(command.Caller(), target); err != nil {
		return nil, err
	}

	if err = target.AdvanceTo(command.Target()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if command.Target() == delivery.StatusDelivered {
		orderRepo := uow.OrderRepository()

		parent, getErr := orderRepo.Get(ctx, target.OrderID())
		if getErr != nil {
			return nil, getErr
		}
		if err = parent.MarkDelivered(); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, parent); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
