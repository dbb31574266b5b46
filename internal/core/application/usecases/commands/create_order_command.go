package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput is one requested order line as it arrives from checkout.
type ItemInput struct {
	ProductID kernel.UUID
	SellerID  kernel.UUID
	Quantity  int
	Price     float64
}

// CreateOrderCommand materializes a buyer's checkout: a pending order with
// locked-in item prices plus its pending delivery record, created together.
type CreateOrderCommand struct {
	orderID     kernel.UUID
	buyerID     kernel.UUID
	addressID   kernel.UUID
	items       []ItemInput
	shippingFee float64
	taxes       float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated checkout command. Item-level
// rules (positive quantity, non-negative price) are enforced by the order
// aggregate when the handler builds it.
func NewCreateOrderCommand(
	orderID, buyerID, addressID kernel.UUID,
	items []ItemInput,
	shippingFee, taxes float64,
) (CreateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := buyerID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if err := addressID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	return CreateOrderCommand{
		orderID:     orderID,
		buyerID:     buyerID,
		addressID:   addressID,
		items:       items,
		shippingFee: shippingFee,
		taxes:       taxes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the purchasing buyer's identifier.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// AddressID returns the shipping address reference.
func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []ItemInput {
	return c.items
}

// ShippingFee returns the delivery charge for the order.
func (c CreateOrderCommand) ShippingFee() float64 {
	return c.shippingFee
}

// Taxes returns the tax amount for the order.
func (c CreateOrderCommand) Taxes() float64 {
	return c.taxes
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
