package delivery

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when a requested delivery status is
	// not reachable from the current one.
	ErrInvalidTransition = errors.New("delivery status transition is not allowed")

	// ErrAlreadyTerminal is returned when mutating a delivery that already
	// reached a terminal status.
	ErrAlreadyTerminal = errors.New("delivery is already in a terminal status")
)

// Status represents the driver-side lifecycle of a delivery.
//
//	Pending ──(accept)──> PendingPickup ──> OutForDelivery ──> Delivered
//	                            │                  │
//	                            └──────> Failed <──┘
//
// Cancelled is reachable from any non-terminal status via the order
// cancellation cascade. Delivered, Failed and Cancelled freeze the record.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means no driver has accepted the delivery yet.
	StatusPending

	// StatusPendingPickup means an assigned driver is en route to pick up.
	StatusPendingPickup

	// StatusOutForDelivery means the driver carries the parcel to the buyer.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal status.
	StatusDelivered

	// StatusFailed is the unsuccessful terminal status.
	StatusFailed

	// StatusCancelled is the terminal status set by the order cascade.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusPending:        "PENDING",
		StatusPendingPickup:  "PENDING_PICKUP",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusFailed:         "FAILED",
		StatusCancelled:      "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:        "PENDING",
		StatusPendingPickup:  "PENDING_PICKUP",
		StatusOutForDelivery: "OUT_FOR_DELIVERY",
		StatusDelivered:      "DELIVERED",
		StatusFailed:         "FAILED",
		StatusCancelled:      "CANCELLED",
	}
}

// StatusFromString maps the wire representation to a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a recognized delivery status", s))
}

// Validate checks that the status belongs to the defined enum.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status ends the delivery lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// canAdvanceTo validates a driver-side progression from s to target.
// Acceptance (Pending -> PendingPickup) is not a progression; it goes
// through Delivery.Accept together with the driver assignment.
func (s Status) canAdvanceTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrAlreadyTerminal, s)
	}

	allowed := false
	switch s {
	case StatusPendingPickup:
		allowed = target == StatusOutForDelivery || target == StatusFailed
	case StatusOutForDelivery:
		allowed = target == StatusDelivered || target == StatusFailed
	}

	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}
