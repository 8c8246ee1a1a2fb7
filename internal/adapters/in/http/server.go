// Package http exposes the order lifecycle over a REST API.
// It coordinates between HTTP handlers and application use cases: requests
// are bound and validated here, commands and queries carry them into the
// core, and domain errors map back onto HTTP status codes.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"
)

// orderIDParam parses the :id path parameter. A malformed id is a client
// error, so the parse failure is wrapped into the invalid-value class
// rather than surfacing as an internal one.
func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return id, nil
}

// Server implements the REST API for order placement, claiming and
// progression. It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler
	claimOrderHandler   commands.ClaimOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getAllOrdersHandler      queries.GetAllOrdersQueryHandler
	getBuyerOrdersHandler    queries.GetBuyerOrdersQueryHandler
	getTakeableOrdersHandler queries.GetTakeableOrdersQueryHandler
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getBuyerOrdersHandler queries.GetBuyerOrdersQueryHandler,
	getTakeableOrdersHandler queries.GetTakeableOrdersQueryHandler,
	getAssignedOrdersHandler queries.GetAssignedOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		claimOrderHandler:        claimOrderHandler,
		updateStatusHandler:      updateStatusHandler,
		getAllOrdersHandler:      getAllOrdersHandler,
		getBuyerOrdersHandler:    getBuyerOrdersHandler,
		getTakeableOrdersHandler: getTakeableOrdersHandler,
		getAssignedOrdersHandler: getAssignedOrdersHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1 with role-gated groups.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(jwtSecret))

	buyer := api.Group("", RequireRole(RoleBuyer))
	buyer.POST("/orders", s.CreateOrder)
	buyer.POST("/orders/:id/cancel", s.CancelOrder)
	buyer.GET("/orders/my", s.GetMyOrders)

	labour := api.Group("", RequireRole(RoleLabour))
	labour.POST("/orders/:id/claim", s.ClaimOrder)
	labour.POST("/orders/:id/status", s.UpdateOrderStatus)
	labour.GET("/orders/takeable", s.GetTakeableOrders)
	labour.GET("/orders/assigned", s.GetAssignedOrders)

	admin := api.Group("", RequireRole(RoleAdmin))
	admin.GET("/orders", s.GetAllOrders)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// authenticated buyer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	lines := make([]order.Line, 0, len(req.Lines))
	for _, item := range req.Lines {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return domainError(ctx, err)
		}
		line, err := order.NewLine(productID, item.Quantity, item.Price)
		if err != nil {
			return domainError(ctx, err)
		}
		lines = append(lines, line)
	}

	address, err := order.NewAddress(req.Address.Street, req.Address.City, req.Address.Region, req.Address.PostalCode)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), principal.ID, lines, address)
	if err != nil {
		return domainError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - cancels the buyer's
// own order and releases its reserved stock.
func (s *Server) CancelOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal.ID)
	if err != nil {
		return domainError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// GetMyOrders handles GET /api/v1/orders/my - lists the buyer's own orders,
// newest first.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	query, err := queries.NewGetBuyerOrdersQuery(principal.ID)
	if err != nil {
		return domainError(ctx, err)
	}

	views, err := s.getBuyerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsToResponse(views))
}

// GetAllOrders handles GET /api/v1/orders - the admin view over every order.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	query := queries.NewGetAllOrdersQuery()

	views, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsToResponse(views))
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - assigns the order to the
// authenticated labourer and confirms it.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, principal.ID)
	if err != nil {
		return domainError(ctx, err)
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(claimed))
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - moves the order
// forward along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	orderID, err := orderIDParam(ctx)
	if err != nil {
		return domainError(ctx, err)
	}

	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, principal.ID, target)
	if err != nil {
		return domainError(ctx, err)
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// GetTakeableOrders handles GET /api/v1/orders/takeable - lists unassigned,
// active orders available for claiming.
func (s *Server) GetTakeableOrders(ctx echo.Context) error {
	query := queries.NewGetTakeableOrdersQuery()

	views, err := s.getTakeableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsToResponse(views))
}

// GetAssignedOrders handles GET /api/v1/orders/assigned - lists orders the
// labourer is or was involved with, plus their delivered count. Pass
// ?include_delivered=true to keep delivered orders in the listing.
func (s *Server) GetAssignedOrders(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	includeDelivered := ctx.QueryParam("include_delivered") == "true"

	query, err := queries.NewGetAssignedOrdersQuery(principal.ID, includeDelivered)
	if err != nil {
		return domainError(ctx, err)
	}

	result, err := s.getAssignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignedOrdersResponse{
		Orders:        viewsToResponse(result.Orders),
		FinishedCount: result.FinishedCount,
	})
}
