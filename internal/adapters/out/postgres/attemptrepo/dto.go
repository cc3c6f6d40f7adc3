// Package attemptrepo persists integration attempt aggregates.
package attemptrepo

import (
	"time"

	"orderintegration/internal/core/domain/model/integration"
	"orderintegration/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AttemptDTO represents the database structure for persisting integration
// attempts. The order is referenced by id only; attempts are their own
// aggregate and are queried independently of orders.
type AttemptDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	Target          int
	Status          int    `gorm:"index"`
	RequestPayload  string `gorm:"type:text"`
	ResponsePayload string `gorm:"type:text"`
	Attempts        int
	LastAttemptAt   time.Time `gorm:"index"`
	ErrorMessage    string    `gorm:"type:text"`
	CorrelationID   string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for integration attempts.
func (AttemptDTO) TableName() string {
	return "integration_attempts"
}

func fromDomain(aggregate *integration.Attempt) AttemptDTO {
	return AttemptDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		Target:          int(aggregate.Target()),
		Status:          int(aggregate.Status()),
		RequestPayload:  aggregate.RequestPayload(),
		ResponsePayload: aggregate.ResponsePayload(),
		Attempts:        aggregate.Attempts(),
		LastAttemptAt:   aggregate.LastAttemptAt(),
		ErrorMessage:    aggregate.ErrorMessage(),
		CorrelationID:   aggregate.CorrelationID(),
	}
}

func toDomain(dto AttemptDTO) (*integration.Attempt, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return integration.RestoreAttempt(
		id,
		orderID,
		integration.TargetSystem(dto.Target),
		integration.Status(dto.Status),
		dto.RequestPayload,
		dto.ResponsePayload,
		dto.Attempts,
		dto.LastAttemptAt,
		dto.ErrorMessage,
		dto.CorrelationID,
	)
}
