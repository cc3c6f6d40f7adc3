package ports

import (
	"context"

	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"
)

// AttemptRepository defines the persistence contract for integration attempt
// aggregates.
type AttemptRepository interface {
	// Add persists a new integration attempt.
	Add(ctx context.Context, aggregate *integration.Attempt) error

	// Update persists changes to an existing integration attempt.
	Update(ctx context.Context, aggregate *integration.Attempt) error

	// Get retrieves an integration attempt by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*integration.Attempt, error)

	// FindOpenForOrder returns the unresolved attempts (Pending or Sent) for
	// the given order, most recently attempted first. Webhook reconciliation
	// resolves the first attempt of the slice.
	FindOpenForOrder(ctx context.Context, orderID kernel.UUID) ([]*integration.Attempt, error)
}
