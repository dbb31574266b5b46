package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a validated, authorized status
// transition to an order. Cancelling an order cascades into its delivery
// within the same transaction, and so does completing one: an order landing
// on Delivered drags a non-terminal delivery along. Deliveries that already
// reached a terminal status are left untouched.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status
// transitions.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle authorizes the caller against the transition policy, applies the
// forward-only move on the aggregate, runs the delivery cascade when the
// target is Cancelled or Delivered, and returns the updated order.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	target, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	policy := services.NewTransitionPolicy()
	if err = policy.AuthorizeOrderTransition(command.Caller(), target, command.Target()); err != nil {
		return nil, err
	}

	if err = target.ChangeStatus(command.Target()); err != nil {
		return nil, err
	}
	target.RecordStatusNote(command.Notes())

	switch command.Target() {
	case order.StatusCancelled:
		if err = h.cancelLinkedDelivery(ctx, uow, target); err != nil {
			return nil, err
		}
	case order.StatusDelivered:
		if err = h.deliverLinkedDelivery(ctx, uow, target); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}

// cancelLinkedDelivery moves the order's delivery to Cancelled. Orders
// created before deliveries were backfilled may not have one; that is not
// an error. Terminal deliveries are skipped.
func (h UpdateOrderStatusCommandHandler) cancelLinkedDelivery(
	ctx context.Context,
	uow UoW,
	target *order.Order,
) error {
	deliveryRepo := uow.DeliveryRepository()

	linked, err := deliveryRepo.GetByOrder(ctx, target.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if linked.IsTerminal() {
		return nil
	}
	if err = linked.Cancel(); err != nil {
		return err
	}

	return deliveryRepo.Update(ctx, linked)
}

// deliverLinkedDelivery moves the order's delivery to Delivered when the
// order itself is marked Delivered, so the two records never disagree about
// a completed handoff. Missing and terminal deliveries are skipped, like in
// the cancellation cascade.
func (h UpdateOrderStatusCommandHandler) deliverLinkedDelivery(
	ctx context.Context,
	uow UoW,
	target *order.Order,
) error {
	deliveryRepo := uow.DeliveryRepository()

	linked, err := deliveryRepo.GetByOrder(ctx, target.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if linked.IsTerminal() {
		return nil
	}
	if err = linked.MarkDelivered(); err != nil {
		return err
	}

	return deliveryRepo.Update(ctx, linked)
}
