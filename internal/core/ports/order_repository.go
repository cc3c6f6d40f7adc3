package ports

import (
	"context"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// List-style queries with filters and pagination are read-model concerns and
// live in the query handlers instead.
type OrderRepository interface {
	// Add persists a new order aggregate, including its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order aggregate with its items by its
	// unique human-readable order number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// ExistsByOrderNumber reports whether an order with the given order number
	// already exists. Used to enforce order-number uniqueness before creation.
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}
