package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand requests a delivery status progression by the
// assigned driver or an admin.
type UpdateDeliveryStatusCommand struct {
	deliveryID kernel.UUID
	target     delivery.Status
	caller     actor.Actor

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a validated progression request.
func NewUpdateDeliveryStatusCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	caller actor.Actor,
) (UpdateDeliveryStatusCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if err := caller.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		deliveryID: deliveryID,
		target:     target,
		caller:     caller,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the targeted delivery's identifier.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the requested status.
func (c UpdateDeliveryStatusCommand) Target() delivery.Status {
	return c.target
}

// Caller returns the actor requesting the progression.
func (c UpdateDeliveryStatusCommand) Caller() actor.Actor {
	return c.caller
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}
