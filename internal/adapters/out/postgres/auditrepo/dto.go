// Package auditrepo persists the append-only audit trail.
package auditrepo

import (
	"time"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting audit events.
// The affected entity is referenced by a (type, id) pair with no foreign key,
// so events survive the entity they describe.
type EventDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType    string    `gorm:"type:varchar(32);index:idx_audit_entity"`
	EntityID      uuid.UUID `gorm:"type:uuid;index:idx_audit_entity"`
	Kind          int       `gorm:"index"`
	OccurredAt    time.Time `gorm:"index"`
	Actor         string    `gorm:"type:varchar(64)"`
	Data          string    `gorm:"type:text"`
	CorrelationID string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for audit events.
func (EventDTO) TableName() string {
	return "audit_events"
}

func fromDomain(event *audit.Event) EventDTO {
	return EventDTO{
		ID:            event.ID().Bytes(),
		EntityType:    event.EntityType(),
		EntityID:      event.EntityID().Bytes(),
		Kind:          int(event.Kind()),
		OccurredAt:    event.OccurredAt(),
		Actor:         event.Actor(),
		Data:          event.Data(),
		CorrelationID: event.CorrelationID(),
	}
}

func toDomain(dto EventDTO) (*audit.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	entityID, err := kernel.UUIDFromBytes(dto.EntityID[:])
	if err != nil {
		return nil, err
	}

	return audit.RestoreEvent(
		id,
		dto.EntityType,
		entityID,
		audit.Kind(dto.Kind),
		dto.OccurredAt,
		dto.Data,
		dto.Actor,
		dto.CorrelationID,
	)
}
