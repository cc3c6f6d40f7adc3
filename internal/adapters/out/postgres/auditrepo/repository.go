package auditrepo

import (
	"context"

	"orderintegration/internal/core/domain/model/audit"
	"orderintegration/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
// The trail is append-only: there are no update or delete operations.
type GormAuditRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB, tracker aggregateTracker) *GormAuditRepository {
	return &GormAuditRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append saves a new audit event to the database.
func (r *GormAuditRepository) Append(ctx context.Context, event *audit.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(event.ID(), event)
	return nil
}

// FindByEntity retrieves all events recorded against an entity in the order
// they occurred, oldest first.
func (r *GormAuditRepository) FindByEntity(
	ctx context.Context,
	entityType string,
	entityID kernel.UUID,
) ([]*audit.Event, error) {
	if err := entityID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID.Bytes()).
		Order("occurred_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*audit.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		events = append(events, event)
	}

	return events, nil
}
