package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an existing order (status,
	// timestamps). Items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetConfirmedWithoutDelivery retrieves confirmed orders that have no
	// delivery record yet. Used by the backfill job.
	GetConfirmedWithoutDelivery(ctx context.Context) ([]*order.Order, error)
}
