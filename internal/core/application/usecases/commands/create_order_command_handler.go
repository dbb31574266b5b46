package commands

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists the checkout result: the pending order
// and its unassigned delivery in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for checkout persistence.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle builds the order aggregate from the checkout inputs, derives the
// totals from the locked item prices, and stores order and delivery
// atomically.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	items := make([]order.Item, 0, len(command.Items()))
	subtotal := 0.0
	for _, input := range command.Items() {
		item, err := order.NewItem(input.ProductID, input.SellerID, input.Quantity, input.Price)
		if err != nil {
			return err
		}
		items = append(items, item)
		subtotal += item.Subtotal()
	}

	totals, err := order.NewTotals(subtotal, command.ShippingFee(), command.Taxes())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(), command.BuyerID(), command.AddressID(), items, totals)
	if err != nil {
		return err
	}

	newDelivery, err := delivery.NewDelivery(kernel.NewUUID(), newOrder.ID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}
	if err := uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
