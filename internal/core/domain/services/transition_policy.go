package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// ErrForbidden is returned when an authenticated caller lacks permission for
// the specific order, delivery, or transition.
var ErrForbidden = errors.New("caller is not permitted to perform this operation")

// sellerTargets is the fulfillment-facing subset of order statuses a seller
// may set on orders containing their items. Delivery confirmation belongs to
// drivers, cancellation and refunds to admins.
var sellerTargets = map[order.Status]bool{
	order.StatusConfirmed:  true,
	order.StatusProcessing: true,
	order.StatusShipped:    true,
}

// TransitionPolicy is the centralized permission table for lifecycle
// operations. It rules on WHO may request a transition; reachability of the
// target status stays with the aggregates.
type TransitionPolicy struct{}

// NewTransitionPolicy creates the policy service.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// AuthorizeOrderTransition decides whether the actor may move the order to
// the target status.
//
//   - ADMIN may set any status.
//   - SELLER may set CONFIRMED, PROCESSING or SHIPPED, and only on orders
//     containing at least one of their own items.
//   - DRIVER and BUYER may not change order status directly; deliveries
//     advance orders through the delivery cascade.
func (p TransitionPolicy) AuthorizeOrderTransition(a actor.Actor, o *order.Order, target order.Status) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	switch a.Role() {
	case actor.RoleAdmin:
		return nil
	case actor.RoleSeller:
		if !sellerTargets[target] {
			return fmt.Errorf("%w: sellers may not set order status %s", ErrForbidden, target)
		}
		if !o.ContainsSeller(a.ID()) {
			return fmt.Errorf("%w: order %s has no items of seller %s", ErrForbidden, o.ID(), a.ID())
		}
		return nil
	default:
		return fmt.Errorf("%w: role %s may not change order status", ErrForbidden, a.Role())
	}
}

// AuthorizeDeliveryTransition decides whether the actor may advance the
// delivery's status: only the assigned driver or an admin.
func (p TransitionPolicy) AuthorizeDeliveryTransition(a actor.Actor, d *delivery.Delivery) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	switch a.Role() {
	case actor.RoleAdmin:
		return nil
	case actor.RoleDriver:
		if !d.IsAssignedTo(a.ID()) {
			return fmt.Errorf("%w: delivery %s is not assigned to driver %s", ErrForbidden, d.ID(), a.ID())
		}
		return nil
	default:
		return fmt.Errorf("%w: role %s may not change delivery status", ErrForbidden, a.Role())
	}
}

// AuthorizeOrderRead decides whether the actor may read an order detail:
// admins unrestricted, buyers their own orders, sellers orders they
// participate in, drivers orders whose delivery they hold. It rules on
// identifiers rather than aggregates so the query side can gate its
// projections without rehydrating domain objects.
func (p TransitionPolicy) AuthorizeOrderRead(
	a actor.Actor,
	orderID, buyerID kernel.UUID,
	sellerIDs []kernel.UUID,
	assignedDriver *kernel.UUID,
) error {
	if err := a.Validate(); err != nil {
		return err
	}

	switch a.Role() {
	case actor.RoleAdmin:
		return nil
	case actor.RoleBuyer:
		if !buyerID.IsEqual(a.ID()) {
			return fmt.Errorf("%w: order %s does not belong to buyer %s", ErrForbidden, orderID, a.ID())
		}
		return nil
	case actor.RoleSeller:
		for _, sellerID := range sellerIDs {
			if sellerID.IsEqual(a.ID()) {
				return nil
			}
		}
		return fmt.Errorf("%w: order %s has no items of seller %s", ErrForbidden, orderID, a.ID())
	case actor.RoleDriver:
		if assignedDriver == nil || !assignedDriver.IsEqual(a.ID()) {
			return fmt.Errorf("%w: order %s is not delivered by driver %s", ErrForbidden, orderID, a.ID())
		}
		return nil
	default:
		return fmt.Errorf("%w: role %s may not read order detail", ErrForbidden, a.Role())
	}
}
