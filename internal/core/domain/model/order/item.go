package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is one product line within an order. The price is locked at order
// time; items never change after the order is created.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	sellerID  kernel.UUID
	quantity  int
	price     float64

	isConstructed bool
}

// NewItem creates a validated order item. Quantity must be positive and the
// price non-negative.
func NewItem(productID, sellerID kernel.UUID, quantity int, price float64) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if err := sellerID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if price < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%.2f is negative", price))
	}

	return Item{
		id:            kernel.NewUUID(),
		productID:     productID,
		sellerID:      sellerID,
		quantity:      quantity,
		price:         price,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs an item from persistence, keeping its original
// identifier.
func RestoreItem(id, productID, sellerID kernel.UUID, quantity int, price float64) (Item, error) {
	item, err := NewItem(productID, sellerID, quantity, price)
	if err != nil {
		return Item{}, err
	}
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	item.id = id
	return item, nil
}

// ID returns the item's identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the purchased product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// SellerID returns the identifier of the seller fulfilling this line.
func (i Item) SellerID() kernel.UUID {
	return i.sellerID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the per-unit price locked at order time.
func (i Item) Price() float64 {
	return i.price
}

// Subtotal returns quantity times locked price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.price
}
