package audit

import (
	"errors"
	"time"

	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"
)

// EntityTypeOrder is the entity type tag for events recorded against orders.
const EntityTypeOrder = "Order"

var (
	// ErrEventIsNotConstructed is returned when an Event instance was not
	// created through the NewEvent or RestoreEvent factory methods.
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")
)

// Event is an immutable record of something that happened to an entity.
// Events are append-only: once recorded they are never updated or deleted.
// They reference the affected entity only by (type, id) pair, with no foreign
// key, so the record outlives the entity it describes.
type Event struct {
	id            kernel.UUID
	entityType    string
	entityID      kernel.UUID
	kind          Kind
	occurredAt    time.Time
	actor         string
	data          string
	correlationID string
	isConstructed bool
}

// NewEvent creates an audit event stamped with the current UTC time.
// The actor, data, and correlation id are optional and may be empty; data, when
// present, is expected to be a compact serialized payload produced by the caller.
func NewEvent(
	id kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	kind Kind,
	data, actor, correlationID string,
) (*Event, error) {
	return RestoreEvent(id, entityType, entityID, kind, time.Now().UTC(), data, actor, correlationID)
}

// RestoreEvent reconstructs an audit event from persistence with its original
// timestamp.
func RestoreEvent(
	id kernel.UUID,
	entityType string,
	entityID kernel.UUID,
	kind Kind,
	occurredAt time.Time,
	data, actor, correlationID string,
) (*Event, error) {
	event := &Event{
		kind:          kind,
		occurredAt:    occurredAt.UTC(),
		actor:         actor,
		data:          data,
		correlationID: correlationID,
		isConstructed: true,
	}

	if err := errors.Join(
		event.setID(id),
		event.setEntityType(entityType),
		event.setEntityID(entityID),
		kind.Validate(),
	); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate ensures the Event instance was properly constructed through one of
// the factory methods.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// EntityType returns the type tag of the affected entity, e.g. "Order".
func (e *Event) EntityType() string {
	return e.entityType
}

// EntityID returns the identifier of the affected entity.
func (e *Event) EntityID() kernel.UUID {
	return e.entityID
}

// Kind returns what happened to the entity.
func (e *Event) Kind() Kind {
	return e.kind
}

// OccurredAt returns the UTC timestamp the event was recorded at.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// Actor returns the optional identifier of the user or client that caused the
// event, or an empty string.
func (e *Event) Actor() string {
	return e.actor
}

// Data returns the optional serialized payload attached to the event, or an
// empty string.
func (e *Event) Data() string {
	return e.data
}

// CorrelationID returns the optional correlation id threading the operation
// that produced this event, or an empty string.
func (e *Event) CorrelationID() string {
	return e.correlationID
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setEntityType(entityType string) error {
	if entityType == "" {
		return errs.NewValueIsRequiredError("entity type")
	}
	e.entityType = entityType
	return nil
}

func (e *Event) setEntityID(entityID kernel.UUID) error {
	if err := entityID.Validate(); err != nil {
		return err
	}
	e.entityID = entityID
	return nil
}
