package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler loads the order detail projection straight from the
// database and applies the read gate on the scanned rows.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle loads the order with its items and delivery summary, then checks
// the caller against the read policy. The gate runs after the load because
// seller and driver access depend on the loaded rows.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	sellerIDs := make([]kernel.UUID, 0, len(resp.Items))
	for _, item := range resp.Items {
		sellerIDs = append(sellerIDs, item.SellerID)
	}
	var assignedDriver *kernel.UUID
	if resp.Delivery != nil {
		assignedDriver = resp.Delivery.DriverID
	}

	policy := services.NewTransitionPolicy()
	if err = policy.AuthorizeOrderRead(
		query.Caller(), resp.ID, resp.BuyerID, sellerIDs, assignedDriver); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.buyer_id,
			o.address_id,
			o.status,
			o.status_note,
			o.subtotal,
			o.shipping_fee,
			o.taxes,
			o.final_amount,
			o.created_at,
			o.updated_at,
			d.id,
			d.driver_id,
			d.status
		FROM orders o
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	var resp GetOrderQueryResponse
	var id, buyerID, addressID uuid.UUID
	var deliveryID, driverID uuid.NullUUID
	var deliveryStatus sql.NullString

	err := row.Scan(
		&id, &buyerID, &addressID, &resp.Status, &resp.StatusNote,
		&resp.Subtotal, &resp.ShippingFee, &resp.Taxes, &resp.FinalAmount,
		&resp.CreatedAt, &resp.UpdatedAt,
		&deliveryID, &driverID, &deliveryStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", orderID)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.AddressID, err = kernel.UUIDFromBytes(addressID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if deliveryID.Valid {
		summary := &GetOrderDeliveryResponse{Status: deliveryStatus.String}
		if summary.ID, err = kernel.UUIDFromBytes(deliveryID.UUID[:]); err != nil {
			return GetOrderQueryResponse{}, err
		}
		if driverID.Valid {
			driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return GetOrderQueryResponse{}, idErr
			}
			summary.DriverID = &driver
		}
		resp.Delivery = summary
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			seller_id,
			quantity,
			price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var item GetOrderItemResponse
		var productID, sellerID uuid.UUID

		if err = rows.Scan(&productID, &sellerID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if item.SellerID, err = kernel.UUIDFromBytes(sellerID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
