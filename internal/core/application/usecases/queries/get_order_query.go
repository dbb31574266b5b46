package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order's detail for a participation-gated
// caller: admins see everything, buyers their own orders, sellers orders
// containing their items, drivers orders whose delivery they hold.
type GetOrderQuery struct {
	orderID kernel.UUID
	caller  actor.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated order detail request.
func NewGetOrderQuery(orderID kernel.UUID, caller actor.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := caller.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Caller returns the actor requesting the detail.
func (q GetOrderQuery) Caller() actor.Actor {
	return q.caller
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderItemResponse is one item line of the order detail.
type GetOrderItemResponse struct {
	ProductID kernel.UUID
	SellerID  kernel.UUID
	Quantity  int
	Price     float64
}

// GetOrderDeliveryResponse is the delivery summary embedded in the order
// detail. DriverID is nil while the delivery is unassigned.
type GetOrderDeliveryResponse struct {
	ID       kernel.UUID
	DriverID *kernel.UUID
	Status   string
}

// GetOrderQueryResponse is the full order detail projection.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	BuyerID     kernel.UUID
	AddressID   kernel.UUID
	Status      string
	StatusNote  string
	Subtotal    float64
	ShippingFee float64
	Taxes       float64
	FinalAmount float64
	Items       []GetOrderItemResponse
	Delivery    *GetOrderDeliveryResponse
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
