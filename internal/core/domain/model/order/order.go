package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a buyer's purchase. It owns the status
// field and is the only place allowed to move it; callers request a target
// status and the aggregate applies the forward-only policy.
//
// Invariants:
//   - at least one item; items are immutable after construction
//   - totals satisfy finalAmount = subtotal + shippingFee + taxes
//   - status moves only along the transitions defined on Status
//   - orders are never deleted; cancellation is a status change
type Order struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	addressID kernel.UUID
	items      []Item
	totals     Totals
	status     Status
	statusNote string
	createdAt  time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewOrder creates a pending order, as produced by checkout.
// Items must be non-empty and each item already validated via NewItem.
func NewOrder(id, buyerID, addressID kernel.UUID, items []Item, totals Totals) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setAddressID(addressID),
		o.setItems(items),
		o.setTotals(totals),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with its stored status
// and timestamps.
func RestoreOrder(
	id, buyerID, addressID kernel.UUID,
	items []Item,
	totals Totals,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, buyerID, addressID, items, totals)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the purchasing buyer's identifier.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// AddressID returns the shipping address reference.
func (o *Order) AddressID() kernel.UUID {
	return o.addressID
}

// Items returns a copy of the order's item lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Totals returns the monetary breakdown.
func (o *Order) Totals() Totals {
	return o.totals
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StatusNote returns the free-text note attached to the latest status
// change, or the empty string when the change carried none.
func (o *Order) StatusNote() string {
	return o.statusNote
}

// RecordStatusNote attaches a free-text note to the current status. Each
// status change carries its own note; an empty note clears the previous
// one. The update timestamp is owned by the status change itself, so this
// does not refresh it and is also safe during restoration.
func (o *Order) RecordStatusNote(note string) {
	o.statusNote = note
}

// CreatedAt returns the checkout timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ContainsSeller reports whether at least one item line belongs to the
// given seller. Sellers may only act on orders they participate in.
func (o *Order) ContainsSeller(sellerID kernel.UUID) bool {
	for _, item := range o.items {
		if item.SellerID().IsEqual(sellerID) {
			return true
		}
	}
	return false
}

// ChangeStatus moves the order to target under the forward-only policy and
// refreshes the update timestamp. Authorization is the caller's concern;
// this method only rules on reachability.
func (o *Order) ChangeStatus(target Status) error {
	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}

	o.status = target
	o.touch()
	return nil
}

// MarkDelivered forces the order to Delivered as part of the delivery
// cascade, regardless of how far fulfillment progressed. A delivered parcel
// outranks the paper trail. No-op when already Delivered; Cancelled and
// Refunded orders cannot be revived.
func (o *Order) MarkDelivered() error {
	if o.status == StatusDelivered {
		return nil
	}
	if o.status == StatusCancelled || o.status == StatusRefunded {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, StatusDelivered)
	}

	o.status = StatusDelivered
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.buyerID = id
	return nil
}

func (o *Order) setAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.addressID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if !item.isConstructed {
			return errs.NewValueIsInvalidError("items")
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if !totals.isConstructed {
		return errs.NewValueIsRequiredError("totals")
	}
	o.totals = totals
	return nil
}
