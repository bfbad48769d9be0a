// Package http exposes the order-management use cases over an echo HTTP API.
package http

import (
	"errors"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/account"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// errorResponse is the uniform error body returned by all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// orderView is the JSON shape of a single order in responses.
type orderView struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	Street       string    `json:"street"`
	Note         string    `json:"note,omitempty"`
	Status       string    `json:"status"`
	ReasonCancel string    `json:"reasonCancel,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// pageView is a page of orders plus paging metadata.
type pageView struct {
	Items      []orderView `json:"items"`
	TotalCount int64       `json:"totalCount"`
	PageNumber int         `json:"pageNumber"`
	PageSize   int         `json:"pageSize"`
}

func toOrderView(item queries.OrderResponse) orderView {
	return orderView{
		ID:           item.ID.String(),
		CustomerID:   item.CustomerID.String(),
		Street:       item.Street,
		Note:         item.Note,
		Status:       item.Status,
		ReasonCancel: item.ReasonCancel,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func toPageView(result queries.PageResult) pageView {
	items := make([]orderView, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toOrderView(item))
	}
	return pageView{
		Items:      items,
		TotalCount: result.TotalCount,
		PageNumber: result.Page,
		PageSize:   result.PageSize,
	}
}

// Server wires the HTTP routes to the application use cases.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler    commands.PlaceOrderCommandHandler
	updateStatusHandler  commands.UpdateOrderStatusCommandHandler
	requestCancelHandler commands.RequestCancelOrderCommandHandler

	// Query handlers
	listOrdersHandler         queries.ListOrdersQueryHandler
	listCustomerOrdersHandler queries.ListCustomerOrdersQueryHandler
	getOrderByIDHandler       queries.GetOrderByIDQueryHandler

	customers CustomerResolver
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	requestCancelHandler commands.RequestCancelOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	listCustomerOrdersHandler queries.ListCustomerOrdersQueryHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	customers CustomerResolver,
) *Server {
	return &Server{
		placeOrderHandler:         placeOrderHandler,
		updateStatusHandler:       updateStatusHandler,
		requestCancelHandler:      requestCancelHandler,
		listOrdersHandler:         listOrdersHandler,
		listCustomerOrdersHandler: listCustomerOrdersHandler,
		getOrderByIDHandler:       getOrderByIDHandler,
		customers:                 customers,
	}
}

// RegisterRoutes attaches all API routes behind bearer-token authentication.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *TokenAuthenticator) {
	api := e.Group("/api", Authenticate(auth))

	api.POST("/orders", s.PlaceOrder, RequireRoles(account.RoleCustomer))
	api.GET("/orders/admin-paging", s.ListOrders, RequireRoles(account.RoleAdmin, account.RoleShipper))
	api.GET("/orders/user-paging", s.ListMyOrders, RequireRoles(account.RoleCustomer))
	api.GET("/orders/:id", s.GetOrderByID)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus, RequireRoles(account.RoleAdmin, account.RoleShipper))
	api.PUT("/orders/cancel", s.RequestCancelOrder, RequireRoles(account.RoleCustomer))
}

// PlaceOrder handles POST /api/orders - places a new order for the caller.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	identity, _ := identityFrom(ctx)

	customerID, err := s.customers.Resolve(ctx.Request().Context(), identity)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Caller has no customer identity",
		})
	}

	var body struct {
		Street string `json:"street"`
		Note   string `json:"note"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, customerID, body.Street, body.Note)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeCommandError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status - moves an order to a
// new lifecycle status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	targetStatus, err := order.StatusFromString(body.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + body.Status,
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, targetStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status update: " + err.Error(),
		})
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeCommandError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, true)
}

// RequestCancelOrder handles PUT /api/orders/cancel - records a cancellation
// request for one of the caller's own orders and notifies admins.
func (s *Server) RequestCancelOrder(ctx echo.Context) error {
	identity, _ := identityFrom(ctx)

	customerID, err := s.customers.Resolve(ctx.Request().Context(), identity)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Caller has no customer identity",
		})
	}

	var body struct {
		OrderID      string `json:"orderId"`
		Reason       string `json:"reason"`
		DetailReason string `json:"detailReason"`
	}
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewRequestCancelOrderCommand(orderID, customerID.String(), body.Reason, body.DetailReason)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid cancellation request: " + err.Error(),
		})
	}

	if handleErr := s.requestCancelHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.writeCommandError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, true)
}

// ListOrders handles GET /api/orders/admin-paging - staff listing with
// optional filters.
func (s *Server) ListOrders(ctx echo.Context) error {
	params := ctx.QueryParams()

	var (
		pageNumber *int
		pageSize   *int
		keyWord    *string
		state      *string
		customerID *string
		fromDate   *time.Time
		toDate     *time.Time
	)
	if err := errors.Join(
		runtime.BindQueryParameter("form", true, false, "pageNumber", params, &pageNumber),
		runtime.BindQueryParameter("form", true, false, "pageSize", params, &pageSize),
		runtime.BindQueryParameter("form", true, false, "keyWord", params, &keyWord),
		runtime.BindQueryParameter("form", true, false, "state", params, &state),
		runtime.BindQueryParameter("form", true, false, "customerId", params, &customerID),
		runtime.BindQueryParameter("form", true, false, "fromDate", params, &fromDate),
		runtime.BindQueryParameter("form", true, false, "toDate", params, &toDate),
	); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query parameters: " + err.Error(),
		})
	}

	query := queries.NewListOrdersQuery(intValue(pageNumber), intValue(pageSize))

	if keyWord != nil {
		query = query.WithKeyWord(*keyWord)
	}
	if state != nil {
		stateFilter, err := order.StatusFromString(*state)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid state filter: " + *state,
			})
		}
		query = query.WithStatus(stateFilter)
	}
	if customerID != nil {
		customerFilter, err := kernel.UUIDFromString(*customerID)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid customer id filter",
			})
		}
		query = query.WithCustomerID(customerFilter)
	}
	if fromDate != nil || toDate != nil {
		query = query.WithDateRange(timeValue(fromDate), timeValue(toDate))
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	return ctx.JSON(http.StatusOK, toPageView(result))
}

// ListMyOrders handles GET /api/orders/user-paging - the caller's own orders
// with the same optional filters as the staff listing, minus the customer
// filter.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	identity, _ := identityFrom(ctx)

	customerID, err := s.customers.Resolve(ctx.Request().Context(), identity)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Caller has no customer identity",
		})
	}

	params := ctx.QueryParams()
	var (
		pageNumber *int
		pageSize   *int
		keyWord    *string
		state      *string
		fromDate   *time.Time
		toDate     *time.Time
	)
	if err := errors.Join(
		runtime.BindQueryParameter("form", true, false, "pageNumber", params, &pageNumber),
		runtime.BindQueryParameter("form", true, false, "pageSize", params, &pageSize),
		runtime.BindQueryParameter("form", true, false, "keyWord", params, &keyWord),
		runtime.BindQueryParameter("form", true, false, "state", params, &state),
		runtime.BindQueryParameter("form", true, false, "fromDate", params, &fromDate),
		runtime.BindQueryParameter("form", true, false, "toDate", params, &toDate),
	); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query parameters: " + err.Error(),
		})
	}

	query, err := queries.NewListCustomerOrdersQuery(customerID, intValue(pageNumber), intValue(pageSize))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	if keyWord != nil {
		query = query.WithKeyWord(*keyWord)
	}
	if state != nil {
		stateFilter, err := order.StatusFromString(*state)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid state filter: " + *state,
			})
		}
		query = query.WithStatus(stateFilter)
	}
	if fromDate != nil || toDate != nil {
		query = query.WithDateRange(timeValue(fromDate), timeValue(toDate))
	}

	result, err := s.listCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	return ctx.JSON(http.StatusOK, toPageView(result))
}

// GetOrderByID handles GET /api/orders/:id. Customers can only see their own
// orders; other customers' orders answer not-found rather than forbidden so
// order ids are not probeable.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	identity, _ := identityFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	result, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, errorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	if !identity.HasRole(account.RoleAdmin) && !identity.HasRole(account.RoleShipper) {
		customerID, err := s.customers.Resolve(ctx.Request().Context(), identity)
		if err != nil || !result.CustomerID.IsEqual(customerID) {
			return ctx.JSON(http.StatusNotFound, errorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
	}

	return ctx.JSON(http.StatusOK, toOrderView(result))
}

// writeCommandError maps use-case errors to HTTP status codes.
func (s *Server) writeCommandError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrUnresolvableCustomerIdentity):
		return ctx.JSON(http.StatusUnauthorized, errorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Caller has no customer identity",
		})
	case errors.Is(err, commands.ErrNotOrderOwner):
		return ctx.JSON(http.StatusForbidden, errorResponse{
			Code:    http.StatusForbidden,
			Message: "Order belongs to another customer",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "Order was changed concurrently, retry",
		})
	case errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func timeValue(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}
