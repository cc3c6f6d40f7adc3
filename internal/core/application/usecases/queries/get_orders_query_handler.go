package queries

import (
	"context"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves pages of the order listing from the database.
//
// Example:
//
//	handler := NewGetOrdersQueryHandler(db)
//	query, _ := NewGetOrdersQuery(GetOrdersFilter{CustomerCode: "CUST-7"}, 1, 20)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Results are sorted newest first and the
// response carries the total match count for pagination.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) (GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	where, args := buildOrdersWhere(query.Filter())

	var totalCount int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders"+where, args...).
		Scan(&totalCount).Error
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	pageArgs := append(args, query.PageSize(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_code,
			status,
			total_amount,
			(SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count,
			created_at,
			updated_at
		FROM orders`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0, query.PageSize())
	for rows.Next() {
		var summary OrderSummary
		var id uuid.UUID
		var status int
		var totalAmount decimal.Decimal
		var itemCount int
		var createdAt, updatedAt time.Time

		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&summary.CustomerCode,
			&status,
			&totalAmount,
			&itemCount,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return GetOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}

		summary.ID = orderID
		summary.Status = order.Status(status)
		summary.TotalAmount = totalAmount
		summary.ItemCount = itemCount
		summary.CreatedAt = createdAt.UTC()
		summary.UpdatedAt = updatedAt.UTC()
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return GetOrdersQueryResponse{
		Orders:     orders,
		Page:       query.Page(),
		PageSize:   query.PageSize(),
		TotalCount: totalCount,
	}, nil
}

// buildOrdersWhere translates the filter into a WHERE clause. Zero-valued
// filter fields contribute no condition.
func buildOrdersWhere(filter GetOrdersFilter) (string, []any) {
	where := ""
	args := make([]any, 0, 5)

	and := func(condition string, conditionArgs ...any) {
		if where == "" {
			where = " WHERE " + condition
		} else {
			where += " AND " + condition
		}
		args = append(args, conditionArgs...)
	}

	if filter.Status != order.Unknown {
		and("status = ?", int(filter.Status))
	}
	if filter.CustomerCode != "" {
		and("customer_code = ?", filter.CustomerCode)
	}
	if filter.OrderNumber != "" {
		and("order_number LIKE ?", "%"+filter.OrderNumber+"%")
	}
	if filter.CreatedFrom != nil {
		and("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		and("created_at <= ?", filter.CreatedTo.UTC())
	}

	return where, args
}
