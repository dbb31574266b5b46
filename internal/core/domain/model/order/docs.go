// Package order contains the Order aggregate: the buyer's purchase record
// spanning one or more sellers' items, its immutable order items, monetary
// totals, and the status state machine governing the lifecycle
//
//	PENDING -> CONFIRMED -> PROCESSING -> SHIPPED -> DELIVERED
//
// with CANCELLED reachable from any non-terminal status and REFUNDED
// reachable only from DELIVERED or CANCELLED. The forward-only policy is
// enforced here, in one place; callers request a target status and the
// aggregate decides whether the move is legal.
package order
