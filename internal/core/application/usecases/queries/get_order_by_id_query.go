package queries

import (
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderByIDQueryIsNotConstructed = errors.New(
		"GetOrderByIDQuery must be created via NewGetOrderByIDQuery constructor",
	)
)

// GetOrderByIDQuery retrieves a single order with its items and the lifecycle
// transitions currently allowed for it.
type GetOrderByIDQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderByIDQuery creates a query for one order's details.
// Validates that the order ID is valid.
func NewGetOrderByIDQuery(orderID kernel.UUID) (GetOrderByIDQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderByIDQuery{}, err
	}

	return GetOrderByIDQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByIDQueryIsNotConstructed if validation fails.
func (q GetOrderByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByIDQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderByIDQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemDetail is one line of the order detail response.
type OrderItemDetail struct {
	ID          kernel.UUID
	Sku         string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// GetOrderByIDQueryResponse is the full order detail, including the statuses
// the order may move to next.
type GetOrderByIDQueryResponse struct {
	ID                 kernel.UUID
	OrderNumber        string
	CustomerCode       string
	Status             order.Status
	TotalAmount        decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Items              []OrderItemDetail
	AllowedTransitions []order.Status
}
