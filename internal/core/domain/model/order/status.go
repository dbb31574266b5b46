package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status is not reachable
// from the current status under the forward-only policy.
var ErrInvalidTransition = errors.New("order status transition is not allowed")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered ──> Refunded
//	   │            │             │             │                        ▲
//	   └────────────┴─────────────┴─────────────┴──────> Cancelled ──────┘
//
// Statuses advance one step at a time; skipping or moving backward is
// rejected. Cancelled is the administrative exit from any non-terminal
// status, Refunded the money-back exit from Delivered or Cancelled.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status produced by checkout.
	StatusPending

	// StatusConfirmed means the order was acknowledged for fulfillment.
	StatusConfirmed

	// StatusProcessing means the seller is preparing the items.
	StatusProcessing

	// StatusShipped means the parcel left the seller.
	StatusShipped

	// StatusDelivered means the buyer received the order. Terminal except
	// for the Refunded exit.
	StatusDelivered

	// StatusCancelled is the administrative exit. Terminal except for the
	// Refunded exit.
	StatusCancelled

	// StatusRefunded is the final money-back state.
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "UNKNOWN",
		StatusPending:    "PENDING",
		StatusConfirmed:  "CONFIRMED",
		StatusProcessing: "PROCESSING",
		StatusShipped:    "SHIPPED",
		StatusDelivered:  "DELIVERED",
		StatusCancelled:  "CANCELLED",
		StatusRefunded:   "REFUNDED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "PENDING",
		StatusConfirmed:  "CONFIRMED",
		StatusProcessing: "PROCESSING",
		StatusShipped:    "SHIPPED",
		StatusDelivered:  "DELIVERED",
		StatusCancelled:  "CANCELLED",
		StatusRefunded:   "REFUNDED",
	}
}

// StatusFromString maps the wire representation to a Status.
// Returns an invalid-value error for unrecognized strings.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a recognized order status", s))
}

// Validate checks that the status belongs to the defined enum.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid order status", s))
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

// IsTerminal reports whether no forward progression remains. Delivered and
// Cancelled still admit the Refunded exit; Refunded admits nothing.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// next returns the immediate successor in the forward sequence, or
// StatusUnknown when the status has no successor.
func (s Status) next() Status {
	switch s {
	case StatusPending:
		return StatusConfirmed
	case StatusConfirmed:
		return StatusProcessing
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return StatusUnknown
	}
}

// CanTransitionTo validates the move from s to target under the
// forward-only policy:
//
//   - target must be s's immediate successor in the forward sequence, or
//   - target is Cancelled and s is not terminal, or
//   - target is Refunded and s is Delivered or Cancelled.
//
// Every other pair, including same-status writes and backward moves,
// returns ErrInvalidTransition. Unrecognized targets fail with an
// invalid-value error before the policy is consulted.
func (s Status) CanTransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case StatusCancelled:
		if s.IsTerminal() {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
		}
		return nil
	case StatusRefunded:
		if s != StatusDelivered && s != StatusCancelled {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
		}
		return nil
	default:
		if s.next() != target {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
		}
		return nil
	}
}
