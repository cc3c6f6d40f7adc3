package attemptrepo

import (
	"context"
	"errors"

	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"
	"orderintegration/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAttemptRepository implements AttemptRepository using GORM.
type GormAttemptRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAttemptRepository creates a new GORM attempt repository.
func NewGormAttemptRepository(db *gorm.DB, tracker aggregateTracker) *GormAttemptRepository {
	return &GormAttemptRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new integration attempt to the database.
func (r *GormAttemptRepository) Add(ctx context.Context, aggregate *integration.Attempt) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing integration attempt to the database.
// Columns are listed explicitly so resolving an attempt can clear fields
// back to their zero value.
func (r *GormAttemptRepository) Update(ctx context.Context, aggregate *integration.Attempt) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AttemptDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "response_payload", "attempts", "last_attempt_at", "error_message", "correlation_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an integration attempt by ID.
func (r *GormAttemptRepository) Get(ctx context.Context, id kernel.UUID) (*integration.Attempt, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AttemptDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("integration attempt", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindOpenForOrder retrieves the unresolved attempts of an order, most
// recently attempted first.
func (r *GormAttemptRepository) FindOpenForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*integration.Attempt, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AttemptDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID.Bytes(),
			[]int{int(integration.Pending), int(integration.Sent)}).
		Order("last_attempt_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	attempts := make([]*integration.Attempt, 0, len(dtos))
	for _, dto := range dtos {
		attempt, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}
