package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand requests a role-gated order status transition.
// The caller identity travels with the command; the handler never looks up
// ambient session state.
type UpdateOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	caller  actor.Actor
	notes   string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a validated transition request.
// The target must be a recognized order status and the caller a properly
// constructed actor; reachability from the current status is decided later
// by the aggregate. Notes are optional free text recorded on the order
// alongside the change.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	caller actor.Actor,
	notes string,
) (UpdateOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err := caller.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		target:  target,
		caller:  caller,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order's identifier.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Caller returns the actor requesting the transition.
func (c UpdateOrderStatusCommand) Caller() actor.Actor {
	return c.caller
}

// Notes returns the optional note accompanying the transition.
func (c UpdateOrderStatusCommand) Notes() string {
	return c.notes
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}
