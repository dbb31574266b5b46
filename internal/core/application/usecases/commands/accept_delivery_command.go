package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a driver claiming an unassigned pending
// delivery. Two drivers racing for the same delivery must end with exactly
// one winner.
type AcceptDeliveryCommand struct {
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a validated acceptance request for the
// authenticated driver.
func NewAcceptDeliveryCommand(deliveryID, driverID kernel.UUID) (AcceptDeliveryCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return AcceptDeliveryCommand{}, err
	}
	if err := driverID.Validate(); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return AcceptDeliveryCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// DeliveryID returns the targeted delivery's identifier.
func (c AcceptDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the accepting driver's identifier.
func (c AcceptDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}
