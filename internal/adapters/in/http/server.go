package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"orderintegration/internal/core/application/usecases/commands"
	"orderintegration/internal/core/application/usecases/queries"
	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// apiActor identifies API-originated changes in the audit trail.
const apiActor = "api"

// Server routes HTTP requests to the application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	sendOrderToErpHandler    commands.SendOrderToErpCommandHandler
	processErpWebhookHandler commands.ProcessErpWebhookCommandHandler

	// Query handlers
	getOrdersHandler      queries.GetOrdersQueryHandler
	getOrderByIDHandler   queries.GetOrderByIDQueryHandler
	getAuditEventsHandler queries.GetAuditEventsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	sendOrderToErpHandler commands.SendOrderToErpCommandHandler,
	processErpWebhookHandler commands.ProcessErpWebhookCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getAuditEventsHandler queries.GetAuditEventsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		sendOrderToErpHandler:    sendOrderToErpHandler,
		processErpWebhookHandler: processErpWebhookHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderByIDHandler:      getOrderByIDHandler,
		getAuditEventsHandler:    getAuditEventsHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrderByID)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/send-to-erp", s.SendOrderToErp)
	api.POST("/webhooks/erp/order-ack", s.ProcessErpWebhook)
	api.GET("/audit", s.GetAuditEvents)
	api.GET("/audit/recent", s.GetRecentAuditEvents)
}

// Health handles GET /health - liveness probe, exempt from authentication.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, itemRequest := range request.Items {
		item, err := order.NewItem(
			itemRequest.Sku,
			itemRequest.Description,
			itemRequest.Quantity,
			itemRequest.UnitPrice,
		)
		if err != nil {
			return badRequest(ctx, "Invalid order item: "+err.Error())
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.OrderNumber,
		request.CustomerCode,
		items,
		apiActor,
		correlationID(ctx),
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:          orderID.String(),
		OrderNumber: request.OrderNumber,
		Status:      order.Created.String(),
	})
}

// GetOrders handles GET /api/v1/orders - paginated, filtered order listing.
func (s *Server) GetOrders(ctx echo.Context) error {
	filter := queries.GetOrdersFilter{
		CustomerCode: ctx.QueryParam("customerCode"),
		OrderNumber:  ctx.QueryParam("orderNumber"),
	}

	if statusName := ctx.QueryParam("status"); statusName != "" {
		status, err := order.ParseStatus(statusName)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		filter.Status = status
	}

	createdFrom, err := parseTimeParam(ctx, "createdFrom")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	filter.CreatedFrom = createdFrom

	createdTo, err := parseTimeParam(ctx, "createdTo")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	filter.CreatedTo = createdTo

	page, err := parseIntParam(ctx, "page")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	pageSize, err := parseIntParam(ctx, "pageSize")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrdersQuery(filter, page, pageSize)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	orders := make([]OrderSummaryResponse, len(response.Orders))
	for i, summary := range response.Orders {
		orders[i] = OrderSummaryResponse{
			ID:           summary.ID.String(),
			OrderNumber:  summary.OrderNumber,
			CustomerCode: summary.CustomerCode,
			Status:       summary.Status.String(),
			TotalAmount:  summary.TotalAmount,
			ItemCount:    summary.ItemCount,
			CreatedAt:    summary.CreatedAt,
			UpdatedAt:    summary.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, OrdersPageResponse{
		Orders:     orders,
		Page:       response.Page,
		PageSize:   response.PageSize,
		TotalCount: response.TotalCount,
	})
}

// GetOrderByID handles GET /api/v1/orders/:id - full order detail.
func (s *Server) GetOrderByID(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	return s.writeOrderDetail(ctx, orderID)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status - moves an order
// through its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := order.ParseStatus(request.NewStatus)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, newStatus, apiActor, correlationID(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return s.writeOrderDetail(ctx, orderID)
}

// SendOrderToErp handles POST /api/v1/orders/:id/send-to-erp - forwards an
// order to the ERP and reports the attempt's outcome.
func (s *Server) SendOrderToErp(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewSendOrderToErpCommand(orderID, apiActor, correlationID(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid send request: "+err.Error())
	}

	result, err := s.sendOrderToErpHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SendToErpResponse{
		AttemptID:     result.AttemptID.String(),
		OrderID:       result.OrderID.String(),
		OrderNumber:   result.OrderNumber,
		AttemptStatus: result.AttemptStatus.String(),
		Success:       result.AttemptStatus == integration.Acked,
		Message:       result.Message,
		ErpReference:  result.ErpReference,
		SentAt:        result.SentAt,
	})
}

// ProcessErpWebhook handles POST /api/v1/webhooks/erp/order-ack - reconciles
// an asynchronous ERP confirmation. The endpoint acknowledges every
// well-formed notification, including ones that match nothing.
func (s *Server) ProcessErpWebhook(ctx echo.Context) error {
	var request ErpWebhookRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	webhookCorrelationID := request.CorrelationID
	if webhookCorrelationID == "" {
		webhookCorrelationID = correlationID(ctx)
	}

	cmd, err := commands.NewProcessErpWebhookCommand(
		request.OrderNumber,
		request.Success,
		request.ErpReference,
		request.Message,
		webhookCorrelationID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid webhook payload: "+err.Error())
	}

	result, err := s.processErpWebhookHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := ErpWebhookResponse{Processed: result.Processed}
	if result.Processed {
		response.Message = "Confirmation applied"
		response.AttemptID = result.AttemptID.String()
	} else {
		response.Message = result.Reason
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAuditEvents handles GET /api/v1/audit - filtered audit trail listing.
func (s *Server) GetAuditEvents(ctx echo.Context) error {
	filter := queries.AuditEventFilter{
		EntityType:    ctx.QueryParam("entityType"),
		CorrelationID: ctx.QueryParam("correlationId"),
	}

	if rawEntityID := ctx.QueryParam("entityId"); rawEntityID != "" {
		entityID, err := kernel.UUIDFromString(rawEntityID)
		if err != nil {
			return badRequest(ctx, "Invalid entity id")
		}
		filter.EntityID = &entityID
	}

	if kindName := ctx.QueryParam("kind"); kindName != "" {
		kind, err := audit.ParseKind(kindName)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		filter.Kind = kind
	}

	limit, err := parseIntParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	return s.writeAuditEvents(ctx, filter, limit)
}

// GetRecentAuditEvents handles GET /api/v1/audit/recent - the latest activity
// across all entities. The limit is clamped to the 1..500 range.
func (s *Server) GetRecentAuditEvents(ctx echo.Context) error {
	limit, err := parseIntParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if limit < 1 {
		limit = 0 // query default
	}
	if limit > 500 {
		limit = 500
	}

	return s.writeAuditEvents(ctx, queries.AuditEventFilter{}, limit)
}

func (s *Server) writeAuditEvents(ctx echo.Context, filter queries.AuditEventFilter, limit int) error {
	query, err := queries.NewGetAuditEventsQuery(filter, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	events, err := s.getAuditEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AuditEventResponse, len(events))
	for i, event := range events {
		response[i] = AuditEventResponse{
			ID:            event.ID.String(),
			EntityType:    event.EntityType,
			EntityID:      event.EntityID.String(),
			Kind:          event.Kind.String(),
			OccurredAt:    event.OccurredAt,
			Actor:         event.Actor,
			Data:          event.Data,
			CorrelationID: event.CorrelationID,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) writeOrderDetail(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderByIDQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]OrderItemResponse, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID.String(),
			Sku:         item.Sku,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	transitions := make([]string, len(detail.AllowedTransitions))
	for i, status := range detail.AllowedTransitions {
		transitions[i] = status.String()
	}

	return ctx.JSON(http.StatusOK, OrderDetailResponse{
		ID:                 detail.ID.String(),
		OrderNumber:        detail.OrderNumber,
		CustomerCode:       detail.CustomerCode,
		Status:             detail.Status.String(),
		TotalAmount:        detail.TotalAmount,
		CreatedAt:          detail.CreatedAt,
		UpdatedAt:          detail.UpdatedAt,
		Items:              items,
		AllowedTransitions: transitions,
	})
}

// writeError translates application errors into HTTP problem responses.
func writeError(ctx echo.Context, err error) error {
	var invalidTransition *order.InvalidTransitionError
	switch {
	case errors.As(err, &invalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: invalidTransition.Error(),
		})
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrErpUnavailable):
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func parseIntParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func parseTimeParam(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &value, nil
}
