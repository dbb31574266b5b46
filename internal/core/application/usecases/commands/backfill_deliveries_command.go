package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrBackfillDeliveriesCommandIsNotConstructed = errors.New(
	"BackfillDeliveriesCommand must be created via NewBackfillDeliveriesCommand constructor",
)

// BackfillDeliveriesCommand triggers creation of delivery records for
// confirmed orders that have none. Normally checkout creates the delivery
// alongside the order; the backfill heals orders that predate that rule or
// lost their delivery record.
type BackfillDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewBackfillDeliveriesCommand creates a new backfill trigger. This is a
// parameterless command run on a schedule.
func NewBackfillDeliveriesCommand() BackfillDeliveriesCommand {
	return BackfillDeliveriesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c BackfillDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrBackfillDeliveriesCommandIsNotConstructed)
}
