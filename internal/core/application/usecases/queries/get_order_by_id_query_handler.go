package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler retrieves one order's details from the database.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query and returns the order with its items and the
// transitions allowed from its current status. Returns an
// ObjectNotFoundError when no order has the requested ID.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (GetOrderByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response := GetOrderByIDQueryResponse{}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_code,
			status,
			total_amount,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var id uuid.UUID
	var status int
	var totalAmount decimal.Decimal
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&response.CustomerCode,
		&status,
		&totalAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderByIDQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderByIDQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}

	response.ID = orderID
	response.Status = order.Status(status)
	response.TotalAmount = totalAmount
	response.CreatedAt = createdAt.UTC()
	response.UpdatedAt = updatedAt.UTC()
	response.AllowedTransitions = order.AllowedTransitions(response.Status)

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderByIDQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderByIDQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemDetail, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			description,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY sku
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemDetail, 0)
	for rows.Next() {
		var item OrderItemDetail
		var id uuid.UUID
		var unitPrice decimal.Decimal

		err = rows.Scan(
			&id,
			&item.Sku,
			&item.Description,
			&item.Quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		item.ID = itemID
		item.UnitPrice = unitPrice
		item.LineTotal = unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
