package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/order"
)

type orderItemResponse struct {
	ProductID string  `json:"productId"`
	SellerID  string  `json:"sellerId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type deliverySummaryResponse struct {
	ID       string  `json:"id"`
	DriverID *string `json:"driverId"`
	Status   string  `json:"status"`
}

type orderDetailResponse struct {
	ID          string                   `json:"id"`
	BuyerID     string                   `json:"buyerId"`
	AddressID   string                   `json:"addressId"`
	Status      string                   `json:"status"`
	StatusNote  string                   `json:"statusNote,omitempty"`
	Subtotal    float64                  `json:"subtotal"`
	ShippingFee float64                  `json:"shippingFee"`
	Taxes       float64                  `json:"taxes"`
	FinalAmount float64                  `json:"finalAmount"`
	Items       []orderItemResponse      `json:"items"`
	Delivery    *deliverySummaryResponse `json:"delivery"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
}

func orderDetailFromQuery(detail queries.GetOrderQueryResponse) orderDetailResponse {
	items := make([]orderItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID.String(),
			SellerID:  item.SellerID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	resp := orderDetailResponse{
		ID:          detail.ID.String(),
		BuyerID:     detail.BuyerID.String(),
		AddressID:   detail.AddressID.String(),
		Status:      detail.Status,
		StatusNote:  detail.StatusNote,
		Subtotal:    detail.Subtotal,
		ShippingFee: detail.ShippingFee,
		Taxes:       detail.Taxes,
		FinalAmount: detail.FinalAmount,
		Items:       items,
		CreatedAt:   detail.CreatedAt,
		UpdatedAt:   detail.UpdatedAt,
	}
	if detail.Delivery != nil {
		summary := &deliverySummaryResponse{
			ID:     detail.Delivery.ID.String(),
			Status: detail.Delivery.Status,
		}
		if detail.Delivery.DriverID != nil {
			driverID := detail.Delivery.DriverID.String()
			summary.DriverID = &driverID
		}
		resp.Delivery = summary
	}
	return resp
}

type orderSummaryResponse struct {
	ID          string    `json:"id"`
	BuyerID     string    `json:"buyerId"`
	Status      string    `json:"status"`
	StatusNote  string    `json:"statusNote,omitempty"`
	FinalAmount float64   `json:"finalAmount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func orderSummaryFromDomain(o *order.Order) orderSummaryResponse {
	return orderSummaryResponse{
		ID:          o.ID().String(),
		BuyerID:     o.BuyerID().String(),
		Status:      o.Status().String(),
		StatusNote:  o.StatusNote(),
		FinalAmount: o.Totals().FinalAmount(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

type deliveryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	DriverID  *string   `json:"driverId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func deliveryFromDomain(d *delivery.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:        d.ID().String(),
		OrderID:   d.OrderID().String(),
		Status:    d.Status().String(),
		UpdatedAt: d.UpdatedAt(),
	}
	if d.Driver() != nil {
		driverID := d.Driver().String()
		resp.DriverID = &driverID
	}
	return resp
}

type availableDeliveryResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	CreatedAt time.Time `json:"createdAt"`
}

type exportedOrderResponse struct {
	ID          string    `json:"id"`
	BuyerID     string    `json:"buyerId"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"itemCount"`
	FinalAmount float64   `json:"finalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}
