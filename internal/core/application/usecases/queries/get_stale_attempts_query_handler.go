package queries

import (
	"context"
	"time"

	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStaleAttemptsQueryHandler retrieves stale open attempts from the database.
type GetStaleAttemptsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleAttemptsQueryHandler creates a handler for stale attempt queries.
// Requires a GORM database connection for query execution.
func NewGetStaleAttemptsQueryHandler(db *gorm.DB) GetStaleAttemptsQueryHandler {
	return GetStaleAttemptsQueryHandler{db: db}
}

// Handle executes the query. Attempts are returned oldest first so the ones
// waiting longest surface first.
func (h GetStaleAttemptsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleAttemptsQuery,
) ([]StaleAttemptResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-query.OlderThan())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.order_id,
			o.order_number,
			a.status,
			a.attempts,
			a.last_attempt_at,
			a.correlation_id
		FROM integration_attempts a
		JOIN orders o ON o.id = a.order_id
		WHERE a.status IN ? AND a.last_attempt_at < ?
		ORDER BY a.last_attempt_at ASC
		LIMIT ?
	`, []int{int(integration.Pending), int(integration.Sent)}, cutoff, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]StaleAttemptResponse, 0, query.Limit())
	for rows.Next() {
		var attempt StaleAttemptResponse
		var id, orderID uuid.UUID
		var status int
		var lastAttemptAt time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&attempt.OrderNumber,
			&status,
			&attempt.Attempts,
			&lastAttemptAt,
			&attempt.CorrelationID,
		)
		if err != nil {
			return nil, err
		}

		attemptID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		attemptOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		attempt.ID = attemptID
		attempt.OrderID = attemptOrderID
		attempt.Status = integration.Status(status)
		attempt.LastAttemptAt = lastAttemptAt.UTC()
		attempts = append(attempts, attempt)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}
