package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	OrderNumber  string                   `json:"orderNumber"`
	CustomerCode string                   `json:"customerCode"`
	Items        []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest is one line of a new order.
type CreateOrderItemRequest struct {
	Sku         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateOrderResponse confirms the created order.
type CreateOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// OrderSummaryResponse is one row of the order listing.
type OrderSummaryResponse struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerCode string          `json:"customerCode"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ItemCount    int             `json:"itemCount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrdersPageResponse is the paginated envelope of GET /api/v1/orders.
type OrdersPageResponse struct {
	Orders     []OrderSummaryResponse `json:"orders"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalCount int64                  `json:"totalCount"`
}

// OrderItemResponse is one line of an order detail.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	Sku         string          `json:"sku"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderDetailResponse is the full order returned by GET /api/v1/orders/:id.
type OrderDetailResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"orderNumber"`
	CustomerCode       string              `json:"customerCode"`
	Status             string              `json:"status"`
	TotalAmount        decimal.Decimal     `json:"totalAmount"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
	Items              []OrderItemResponse `json:"items"`
	AllowedTransitions []string            `json:"allowedTransitions"`
}

// UpdateStatusRequest is the body of POST /api/v1/orders/:id/status.
type UpdateStatusRequest struct {
	NewStatus string `json:"newStatus"`
}

// SendToErpResponse summarizes the outcome of POST /api/v1/orders/:id/send-to-erp.
type SendToErpResponse struct {
	AttemptID     string    `json:"attemptId"`
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	AttemptStatus string    `json:"attemptStatus"`
	Success       bool      `json:"success"`
	Message       string    `json:"message,omitempty"`
	ErpReference  string    `json:"erpReference,omitempty"`
	SentAt        time.Time `json:"sentAt"`
}

// ErpWebhookRequest is the confirmation the ERP posts back asynchronously.
type ErpWebhookRequest struct {
	OrderNumber   string `json:"orderNumber"`
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	ErpReference  string `json:"erpReference,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// ErpWebhookResponse acknowledges a webhook notification. Processed is false
// when the notification matched no order or no open attempt.
type ErpWebhookResponse struct {
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
	AttemptID string `json:"attemptId,omitempty"`
}

// AuditEventResponse is one entry of the audit trail listing.
type AuditEventResponse struct {
	ID            string    `json:"id"`
	EntityType    string    `json:"entityType"`
	EntityID      string    `json:"entityId"`
	Kind          string    `json:"kind"`
	OccurredAt    time.Time `json:"occurredAt"`
	Actor         string    `json:"actor,omitempty"`
	Data          string    `json:"data,omitempty"`
	CorrelationID string    `json:"correlationId,omitempty"`
}
