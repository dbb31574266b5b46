package queries

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler retrieves unassigned pending
// deliveries from the database.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for the driver
// pool query.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle returns every delivery without a driver still in the pending
// status, oldest first.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			created_at
		FROM deliveries
		WHERE driver_id IS NULL AND status = ?
		ORDER BY created_at
	`, delivery.StatusPending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pool := make([]GetAvailableDeliveriesQueryResponse, 0)
	for rows.Next() {
		var resp GetAvailableDeliveriesQueryResponse
		var id, orderID uuid.UUID

		if err = rows.Scan(&id, &orderID, &resp.CreatedAt); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		pool = append(pool, resp)
	}

	return pool, rows.Err()
}
