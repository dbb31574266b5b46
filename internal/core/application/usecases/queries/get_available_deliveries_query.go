package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves the pool of unassigned pending
// deliveries drivers can accept. Oldest first, so long-waiting orders
// surface at the top of every driver's list.
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates the parameterless pool query.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// GetAvailableDeliveriesQueryResponse is one acceptable delivery.
type GetAvailableDeliveriesQueryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	CreatedAt time.Time
}
