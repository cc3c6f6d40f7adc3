// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the domain
// aggregates and unit of work used by commands.
package queries

import (
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"
	"orderintegration/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersFilter narrows the order listing. Zero values mean "no filter":
// an Unknown status, empty strings, and nil times are all ignored.
type GetOrdersFilter struct {
	// Status keeps only orders currently in this status.
	Status order.Status

	// CustomerCode keeps only orders of this customer (exact match).
	CustomerCode string

	// OrderNumber keeps orders whose number contains this fragment.
	OrderNumber string

	// CreatedFrom and CreatedTo bound the creation timestamp (inclusive).
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// GetOrdersQuery retrieves a filtered, paginated page of orders,
// newest first.
//
// Example:
//
//	query, err := NewGetOrdersQuery(GetOrdersFilter{Status: order.Created}, 1, 20)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrdersQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("Showing %d of %d orders\n", len(page.Orders), page.TotalCount)
type GetOrdersQuery struct {
	filter   GetOrdersFilter
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a page of the order listing.
// Page numbering starts at 1; a zero page or page size falls back to the
// defaults, and the page size is capped at 100.
func NewGetOrdersQuery(filter GetOrdersFilter, page, pageSize int) (GetOrdersQuery, error) {
	if filter.Status != order.Unknown {
		if err := filter.Status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if page < 0 {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 0, "unbounded")
	}
	if pageSize < 0 || pageSize > maxPageSize {
		return GetOrdersQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 0, maxPageSize)
	}

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	return GetOrdersQuery{
		filter:   filter,
		page:     page,
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Filter returns the listing filter.
func (q GetOrdersQuery) Filter() GetOrdersFilter {
	return q.filter
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the number of orders per page.
func (q GetOrdersQuery) PageSize() int {
	return q.pageSize
}

// OrderSummary is one row of the order listing.
type OrderSummary struct {
	ID           kernel.UUID
	OrderNumber  string
	CustomerCode string
	Status       order.Status
	TotalAmount  decimal.Decimal
	ItemCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetOrdersQueryResponse is a page of the order listing together with the
// total number of orders matching the filter.
type GetOrdersQueryResponse struct {
	Orders     []OrderSummary
	Page       int
	PageSize   int
	TotalCount int64
}
