package queries

import (
	"context"
	"time"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAuditEventsQueryHandler retrieves audit trail entries from the database.
type GetAuditEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetAuditEventsQueryHandler creates a handler for audit trail queries.
// Requires a GORM database connection for query execution.
func NewGetAuditEventsQueryHandler(db *gorm.DB) GetAuditEventsQueryHandler {
	return GetAuditEventsQueryHandler{db: db}
}

// Handle executes the query. Events are returned newest first, at most the
// query's limit.
func (h GetAuditEventsQueryHandler) Handle(
	ctx context.Context,
	query GetAuditEventsQuery,
) ([]AuditEventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := buildAuditWhere(query.Filter())
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			entity_type,
			entity_id,
			kind,
			occurred_at,
			actor,
			data,
			correlation_id
		FROM audit_events`+where+`
		ORDER BY occurred_at DESC
		LIMIT ?
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]AuditEventResponse, 0, query.Limit())
	for rows.Next() {
		var event AuditEventResponse
		var id, entityID uuid.UUID
		var kind int
		var occurredAt time.Time

		err = rows.Scan(
			&id,
			&event.EntityType,
			&entityID,
			&kind,
			&occurredAt,
			&event.Actor,
			&event.Data,
			&event.CorrelationID,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		eventEntityID, idErr := kernel.UUIDFromBytes(entityID[:])
		if idErr != nil {
			return nil, idErr
		}

		event.ID = eventID
		event.EntityID = eventEntityID
		event.Kind = audit.Kind(kind)
		event.OccurredAt = occurredAt.UTC()
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// buildAuditWhere translates the filter into a WHERE clause. Zero-valued
// filter fields contribute no condition.
func buildAuditWhere(filter AuditEventFilter) (string, []any) {
	where := ""
	args := make([]any, 0, 4)

	and := func(condition string, conditionArgs ...any) {
		if where == "" {
			where = " WHERE " + condition
		} else {
			where += " AND " + condition
		}
		args = append(args, conditionArgs...)
	}

	if filter.EntityType != "" {
		and("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		and("entity_id = ?", filter.EntityID.Bytes())
	}
	if filter.Kind != audit.UnknownKind {
		and("kind = ?", int(filter.Kind))
	}
	if filter.CorrelationID != "" {
		and("correlation_id = ?", filter.CorrelationID)
	}

	return where, args
}
