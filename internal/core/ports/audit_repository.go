package ports

import (
	"context"

	"orderintegration/internal/core/domain/model/audit"
)

// AuditRepository defines the persistence contract for the append-only audit
// trail. Events are never updated or deleted once appended. Filtered reads
// are served by the audit query handler.
type AuditRepository interface {
	// Append persists a new audit event.
	Append(ctx context.Context, event *audit.Event) error
}
