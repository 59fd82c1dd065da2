// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"gascylinder/internal/core/ports"
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

	// CylinderRepoFactory provides access to the cylinder repository within a transaction.
	CylinderRepoFactory interface {
		CylinderRepository() ports.CylinderRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// LoyaltyRepoFactory provides access to the loyalty repository within a transaction.
	LoyaltyRepoFactory interface {
		LoyaltyRepository() ports.LoyaltyRepository
	}

	// CylinderUoW manages transactions for cylinder-only operations.
	CylinderUoW interface {
		TxManager
		CylinderRepoFactory
	}

	// CylinderUoWFactory creates new cylinder unit of work instances.
	CylinderUoWFactory interface {
		Create() CylinderUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// LoyaltyUoW manages transactions for loyalty operations. It carries the
	// order repository too because eligibility is computed from historical
	// order counts.
	LoyaltyUoW interface {
		TxManager
		LoyaltyRepoFactory
		OrderRepoFactory
	}

	// LoyaltyUoWFactory creates new loyalty unit of work instances.
	LoyaltyUoWFactory interface {
		Create() LoyaltyUoW
	}

	// UoW manages transactions across the order and cylinder aggregates.
	// Used by commands that transition an order and project the result onto
	// the cylinder registry.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   cylinderRepo := uow.CylinderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CylinderRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
