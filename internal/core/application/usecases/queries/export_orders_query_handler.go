package queries

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportOrdersQueryHandler retrieves the full order list as flat rows.
// Admin-only: the export spans every buyer and seller.
type ExportOrdersQueryHandler struct {
	db *gorm.DB
}

// NewExportOrdersQueryHandler creates a handler for the order export.
func NewExportOrdersQueryHandler(db *gorm.DB) ExportOrdersQueryHandler {
	return ExportOrdersQueryHandler{db: db}
}

// Handle returns every order with its item count and final amount, newest
// first.
func (h ExportOrdersQueryHandler) Handle(
	ctx context.Context,
	query ExportOrdersQuery,
) ([]ExportOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Caller().IsAdmin() {
		return nil, fmt.Errorf("%w: only admins may export orders", services.ErrForbidden)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.buyer_id,
			o.status,
			COUNT(i.id),
			o.final_amount,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		GROUP BY o.id, o.buyer_id, o.status, o.final_amount, o.created_at
		ORDER BY o.created_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exported := make([]ExportOrdersQueryResponse, 0)
	for rows.Next() {
		var resp ExportOrdersQueryResponse
		var id, buyerID uuid.UUID

		err = rows.Scan(&id, &buyerID, &resp.Status, &resp.ItemCount,
			&resp.FinalAmount, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
			return nil, err
		}
		exported = append(exported, resp)
	}

	return exported, rows.Err()
}
