package queries

import (
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"
	"orderintegration/internal/pkg/guard"
)

const (
	defaultStaleLimit = 100
	maxStaleLimit     = 500
)

var (
	ErrGetStaleAttemptsQueryIsNotConstructed = errors.New(
		"GetStaleAttemptsQuery must be created via NewGetStaleAttemptsQuery constructor",
	)
)

// GetStaleAttemptsQuery finds integration attempts that are still open
// (Pending or Sent) and have not been touched for longer than the threshold.
// Such attempts are waiting on an ERP confirmation that may never arrive.
type GetStaleAttemptsQuery struct {
	olderThan time.Duration
	limit     int

	guard guard.ConstructorGuard
}

// NewGetStaleAttemptsQuery creates a query for open attempts untouched for at
// least olderThan. A zero limit falls back to 100; the limit is capped at 500.
func NewGetStaleAttemptsQuery(olderThan time.Duration, limit int) (GetStaleAttemptsQuery, error) {
	if olderThan <= 0 {
		return GetStaleAttemptsQuery{}, errs.NewValueIsRequiredError("olderThan")
	}
	if limit < 0 || limit > maxStaleLimit {
		return GetStaleAttemptsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxStaleLimit)
	}

	if limit == 0 {
		limit = defaultStaleLimit
	}

	return GetStaleAttemptsQuery{
		olderThan: olderThan,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStaleAttemptsQueryIsNotConstructed if validation fails.
func (q GetStaleAttemptsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleAttemptsQueryIsNotConstructed)
}

// OlderThan returns the staleness threshold.
func (q GetStaleAttemptsQuery) OlderThan() time.Duration {
	return q.olderThan
}

// Limit returns the maximum number of attempts to return.
func (q GetStaleAttemptsQuery) Limit() int {
	return q.limit
}

// StaleAttemptResponse is one open attempt that exceeded the staleness
// threshold, joined with the order it belongs to.
type StaleAttemptResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	Status        integration.Status
	Attempts      int
	LastAttemptAt time.Time
	CorrelationID string
}
