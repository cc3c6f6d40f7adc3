// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"orderintegration/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AttemptRepoFactory provides access to attempt repository within a transaction.
	AttemptRepoFactory interface {
		AttemptRepository() ports.AttemptRepository
	}

	// AuditRepoFactory provides access to audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// OrderUoW manages transactions for order lifecycle operations.
	// Every order mutation records an audit event in the same transaction,
	// so the audit repository is always part of this unit of work.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IntegrationUoW manages transactions for ERP integration operations.
	// Used for commands that coordinate orders, integration attempts, and the
	// audit trail in a single transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   attemptRepo := uow.AttemptRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	IntegrationUoW interface {
		TxManager
		OrderRepoFactory
		AttemptRepoFactory
		AuditRepoFactory
	}

	// IntegrationUoWFactory creates new unit of work instances for integration operations.
	IntegrationUoWFactory interface {
		Create() IntegrationUoW
	}
)
