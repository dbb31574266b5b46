// Package http exposes the role-gated REST surface: order lifecycle routes
// for buyers, sellers and admins, and shipment routes for drivers. Every
// route runs behind the JWT auth middleware; handlers translate requests
// into commands and queries and map domain errors onto HTTP statuses.
package http

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP routes and application use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	bulkUpdateHandler           commands.BulkUpdateOrderStatusCommandHandler
	acceptDeliveryHandler       commands.AcceptDeliveryCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler

	getOrderHandler               queries.GetOrderQueryHandler
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	exportOrdersHandler           queries.ExportOrdersQueryHandler
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	bulkUpdateHandler commands.BulkUpdateOrderStatusCommandHandler,
	acceptDeliveryHandler commands.AcceptDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	exportOrdersHandler queries.ExportOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		bulkUpdateHandler:             bulkUpdateHandler,
		acceptDeliveryHandler:         acceptDeliveryHandler,
		updateDeliveryStatusHandler:   updateDeliveryStatusHandler,
		getOrderHandler:               getOrderHandler,
		getAvailableDeliveriesHandler: getAvailableDeliveriesHandler,
		exportOrdersHandler:           exportOrdersHandler,
	}
}

// RegisterRoutes mounts every API route behind the auth middleware.
// The export route is registered before the :id routes so "export" is not
// captured as an order id.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/export", s.ExportOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id", s.UpdateOrderStatus)
	api.DELETE("/orders/:id", s.CancelOrder)
	api.PATCH("/orders", s.BulkUpdateOrderStatus)

	api.POST("/driver/shipments/:id/accept", s.AcceptDelivery)
	api.PATCH("/driver/shipments/:id", s.UpdateDeliveryStatus)
	api.GET("/driver/shipments", s.GetAvailableDeliveries)
}

type newOrderItem struct {
	ProductID string  `json:"productId"`
	SellerID  string  `json:"sellerId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type newOrderRequest struct {
	AddressID   string         `json:"addressId"`
	Items       []newOrderItem `json:"items"`
	ShippingFee float64        `json:"shippingFee"`
	Taxes       float64        `json:"taxes"`
}

// CreateOrder handles POST /api/v1/orders - buyer checkout.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if caller.Role() != actor.RoleBuyer {
		return respondErrorStatus(ctx, http.StatusForbidden, services.ErrForbidden)
	}

	var req newOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondErrorStatus(ctx, http.StatusBadRequest, err)
	}

	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		sellerID, idErr := kernel.UUIDFromString(item.SellerID)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		items = append(items, commands.ItemInput{
			ProductID: productID,
			SellerID:  sellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, caller.ID(), addressID, items, req.ShippingFee, req.Taxes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id - participation-gated detail.
func (s *Server) GetOrder(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailFromQuery(detail))
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id - role-gated
// transition.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondErrorStatus(ctx, http.StatusBadRequest, err)
	}
	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateOrder(ctx, orderID, target, caller, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderSummaryFromDomain(updated))
}

// CancelOrder handles DELETE /api/v1/orders/:id. Orders are never deleted;
// the route is a cancellation, and the transition policy restricts it to
// admins.
func (s *Server) CancelOrder(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	if _, err = s.updateOrder(ctx, orderID, order.StatusCancelled, caller, ""); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"message": "order cancelled"})
}

func (s *Server) updateOrder(
	ctx echo.Context,
	orderID kernel.UUID,
	target order.Status,
	caller actor.Actor,
	notes string,
) (*order.Order, error) {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, caller, notes)
	if err != nil {
		return nil, err
	}
	return s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
}

type bulkUpdateRequest struct {
	OrderIDs []string `json:"orderIds"`
	Action   string   `json:"action"`
}

type bulkFailure struct {
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

type bulkUpdateResponse struct {
	Updated  int           `json:"updated"`
	Failures []bulkFailure `json:"failures"`
}

// BulkUpdateOrderStatus handles PATCH /api/v1/orders - same transition
// applied to a set of orders, reported per order.
func (s *Server) BulkUpdateOrderStatus(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req bulkUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return respondErrorStatus(ctx, http.StatusBadRequest, err)
	}

	target, err := order.StatusFromString(req.Action)
	if err != nil {
		return respondError(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkUpdateOrderStatusCommand(orderIDs, target, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.bulkUpdateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := bulkUpdateResponse{Updated: result.Updated, Failures: make([]bulkFailure, 0)}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, bulkFailure{
			OrderID: failure.OrderID.String(),
			Error:   failure.Err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// AcceptDelivery handles POST /api/v1/driver/shipments/:id/accept - a
// driver claiming an unassigned shipment.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if caller.Role() != actor.RoleDriver {
		return respondErrorStatus(ctx, http.StatusForbidden, services.ErrForbidden)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, caller.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	accepted, err := s.acceptDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(accepted))
}

// UpdateDeliveryStatus handles PATCH /api/v1/driver/shipments/:id -
// progression by the assignee driver or an admin.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondErrorStatus(ctx, http.StatusBadRequest, err)
	}
	target, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(deliveryID, target, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(updated))
}

// GetAvailableDeliveries handles GET /api/v1/driver/shipments - the pool of
// shipments a driver can accept.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if caller.Role() != actor.RoleDriver && !caller.IsAdmin() {
		return respondErrorStatus(ctx, http.StatusForbidden, services.ErrForbidden)
	}

	pool, err := s.getAvailableDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableDeliveriesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]availableDeliveryResponse, 0, len(pool))
	for _, item := range pool {
		resp = append(resp, availableDeliveryResponse{
			ID:        item.ID.String(),
			OrderID:   item.OrderID.String(),
			CreatedAt: item.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ExportOrders handles GET /api/v1/orders/export?format=csv|json -
// admin-only flat export.
func (s *Server) ExportOrders(ctx echo.Context) error {
	caller, err := ActorFromContext(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	format := ctx.QueryParam("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		return respondErrorStatus(ctx, http.StatusBadRequest,
			echo.NewHTTPError(http.StatusBadRequest, "format must be csv or json"))
	}

	query, err := queries.NewExportOrdersQuery(caller)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.exportOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	if format == "csv" {
		return writeOrdersCSV(ctx, rows)
	}

	resp := make([]exportedOrderResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, exportedOrderResponse{
			ID:          row.ID.String(),
			BuyerID:     row.BuyerID.String(),
			Status:      row.Status,
			ItemCount:   row.ItemCount,
			FinalAmount: row.FinalAmount,
			CreatedAt:   row.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

func writeOrdersCSV(ctx echo.Context, rows []queries.ExportOrdersQueryResponse) error {
	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv")
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="orders.csv"`)
	ctx.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(ctx.Response())
	if err := w.Write([]string{"id", "buyer_id", "status", "item_count",
		"final_amount", "created_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID.String(),
			row.BuyerID.String(),
			row.Status,
			strconv.Itoa(row.ItemCount),
			strconv.FormatFloat(row.FinalAmount, 'f', 2, 64),
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
