package queries

import (
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"
	"orderintegration/internal/pkg/guard"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

var (
	ErrGetAuditEventsQueryIsNotConstructed = errors.New(
		"GetAuditEventsQuery must be created via NewGetAuditEventsQuery constructor",
	)
)

// AuditEventFilter narrows the audit trail listing. Zero values mean
// "no filter".
type AuditEventFilter struct {
	// EntityType keeps only events recorded against this entity type.
	EntityType string

	// EntityID keeps only events recorded against this entity.
	EntityID *kernel.UUID

	// Kind keeps only events of this kind.
	Kind audit.Kind

	// CorrelationID keeps only events threaded by this correlation id.
	CorrelationID string
}

// GetAuditEventsQuery retrieves audit events, newest first. With an empty
// filter it serves the "recent activity" view.
type GetAuditEventsQuery struct {
	filter AuditEventFilter
	limit  int

	guard guard.ConstructorGuard
}

// NewGetAuditEventsQuery creates a query for the audit trail.
// A zero limit falls back to 50; the limit is capped at 500.
func NewGetAuditEventsQuery(filter AuditEventFilter, limit int) (GetAuditEventsQuery, error) {
	if filter.Kind != audit.UnknownKind {
		if err := filter.Kind.Validate(); err != nil {
			return GetAuditEventsQuery{}, err
		}
	}
	if filter.EntityID != nil {
		if err := filter.EntityID.Validate(); err != nil {
			return GetAuditEventsQuery{}, err
		}
	}
	if limit < 0 || limit > maxAuditLimit {
		return GetAuditEventsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxAuditLimit)
	}

	if limit == 0 {
		limit = defaultAuditLimit
	}

	return GetAuditEventsQuery{
		filter: filter,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAuditEventsQueryIsNotConstructed if validation fails.
func (q GetAuditEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditEventsQueryIsNotConstructed)
}

// Filter returns the audit trail filter.
func (q GetAuditEventsQuery) Filter() AuditEventFilter {
	return q.filter
}

// Limit returns the maximum number of events to return.
func (q GetAuditEventsQuery) Limit() int {
	return q.limit
}

// AuditEventResponse is one row of the audit trail listing.
type AuditEventResponse struct {
	ID            kernel.UUID
	EntityType    string
	EntityID      kernel.UUID
	Kind          audit.Kind
	OccurredAt    time.Time
	Actor         string
	Data          string
	CorrelationID string
}
