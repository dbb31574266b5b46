package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrBulkUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"BulkUpdateOrderStatusCommand must be created via NewBulkUpdateOrderStatusCommand constructor",
)

// BulkUpdateOrderStatusCommand applies the same status transition to a set
// of orders with per-item isolation: one order's failure never aborts the
// batch.
type BulkUpdateOrderStatusCommand struct {
	orderIDs []kernel.UUID
	target   order.Status
	caller   actor.Actor

	guard guard.ConstructorGuard
}

// NewBulkUpdateOrderStatusCommand creates a validated bulk transition
// request. The id set must be non-empty and every id well-formed.
func NewBulkUpdateOrderStatusCommand(
	orderIDs []kernel.UUID,
	target order.Status,
	caller actor.Actor,
) (BulkUpdateOrderStatusCommand, error) {
	if len(orderIDs) == 0 {
		return BulkUpdateOrderStatusCommand{}, errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return BulkUpdateOrderStatusCommand{}, err
		}
	}
	if err := target.Validate(); err != nil {
		return BulkUpdateOrderStatusCommand{}, err
	}
	if err := caller.Validate(); err != nil {
		return BulkUpdateOrderStatusCommand{}, err
	}

	return BulkUpdateOrderStatusCommand{
		orderIDs: orderIDs,
		target:   target,
		caller:   caller,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderIDs returns the targeted order identifiers.
func (c BulkUpdateOrderStatusCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

// Target returns the requested status.
func (c BulkUpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Caller returns the actor requesting the transitions.
func (c BulkUpdateOrderStatusCommand) Caller() actor.Actor {
	return c.caller
}

// Validate ensures the command was created through the constructor.
func (c BulkUpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateOrderStatusCommandIsNotConstructed)
}
