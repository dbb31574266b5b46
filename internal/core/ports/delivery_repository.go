package ports

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrder retrieves the delivery servicing the given order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// Accept persists an acceptance as a single conditional write: the row
	// is updated only while it is still unassigned and pending. Returns
	// delivery.ErrAlreadyAssigned when another driver won the race.
	Accept(ctx context.Context, aggregate *delivery.Delivery) error
}
