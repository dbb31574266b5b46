// Package delivery contains the Delivery aggregate: the fulfillment record
// tracking a driver's handling of an order's physical transit. A
// delivery with no driver and Pending status is open for acceptance by any
// driver; at most one driver holds it at a time.
package delivery

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was
	// not created through the factory functions.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrAlreadyAssigned is returned when acceptance targets a delivery
	// that already has a driver or left the Pending status.
	ErrAlreadyAssigned = errors.New("delivery is already assigned to a driver")
)

// Delivery is the aggregate root for order fulfillment. It is created
// alongside its order and mutated by drivers (accept, advance) and the
// order cancellation cascade.
type Delivery struct {
	id        kernel.UUID
	orderID   kernel.UUID
	driverID  *kernel.UUID
	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewDelivery creates an unassigned pending delivery for the given order.
func NewDelivery(id, orderID kernel.UUID) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Delivery{
		id:            id,
		orderID:       orderID,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence. The stored
// status and driver assignment must be consistent: in-progress statuses
// require an assigned driver, while Pending forbids one. Cancelled and
// Delivered are valid without a driver because both cascades (order
// cancellation, order completion) can end a delivery nobody accepted.
func RestoreDelivery(
	id, orderID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	d, err := NewDelivery(id, orderID)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}
	if driverID == nil && status != StatusPending && status != StatusCancelled &&
		status != StatusDelivered {
		return nil, fmt.Errorf("%w: status %s requires a driver", ErrDeliveryIsNotConstructed, status)
	}
	if driverID != nil && status == StatusPending {
		return nil, fmt.Errorf("%w: pending delivery cannot have a driver", ErrDeliveryIsNotConstructed)
	}

	d.driverID = driverID
	d.status = status
	d.createdAt = createdAt
	d.updatedAt = updatedAt
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the serviced order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Driver returns the assigned driver's identifier, or nil when unassigned.
func (d *Delivery) Driver() *kernel.UUID {
	return d.driverID
}

// Status returns the current delivery status.
func (d *Delivery) Status() Status {
	return d.status
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsAssignedTo reports whether the given driver currently holds the delivery.
func (d *Delivery) IsAssignedTo(driverID kernel.UUID) bool {
	return d.driverID != nil && d.driverID.IsEqual(driverID)
}

// IsTerminal reports whether the delivery reached a terminal status.
func (d *Delivery) IsTerminal() bool {
	return d.status.IsTerminal()
}

// Accept assigns the delivery to a driver and moves it to PendingPickup.
// Only an unassigned Pending delivery can be accepted; anything else is a
// lost race and returns ErrAlreadyAssigned. The persistence layer repeats
// this check as a conditional write so two racing drivers cannot both win.
func (d *Delivery) Accept(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if d.driverID != nil || d.status != StatusPending {
		return fmt.Errorf("%w: delivery %s", ErrAlreadyAssigned, d.id)
	}

	d.driverID = &driverID
	d.status = StatusPendingPickup
	d.touch()
	return nil
}

// AdvanceTo moves an accepted delivery forward:
// PendingPickup -> OutForDelivery -> Delivered, with Failed reachable from
// either in-progress status. Terminal deliveries return ErrAlreadyTerminal.
func (d *Delivery) AdvanceTo(target Status) error {
	if err := d.status.canAdvanceTo(target); err != nil {
		return err
	}

	d.status = target
	d.touch()
	return nil
}

// MarkDelivered ends the delivery as part of the order completion cascade:
// an order moved to DELIVERED means the handoff happened, even when no
// driver progressed (or ever held) the record. No-op when already
// Delivered; other terminal statuses return ErrAlreadyTerminal.
func (d *Delivery) MarkDelivered() error {
	if d.status == StatusDelivered {
		return nil
	}
	if d.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrAlreadyTerminal, d.status)
	}

	d.status = StatusDelivered
	d.touch()
	return nil
}

// Cancel ends the delivery as part of the order cancellation cascade.
// Cancelling an already terminal delivery returns ErrAlreadyTerminal;
// callers skip terminal records instead of treating that as a failure.
func (d *Delivery) Cancel() error {
	if d.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrAlreadyTerminal, d.status)
	}

	d.status = StatusCancelled
	d.touch()
	return nil
}

func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}
