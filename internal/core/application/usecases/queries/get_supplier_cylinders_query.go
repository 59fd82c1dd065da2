// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var (
	ErrGetSupplierCylindersQueryIsNotConstructed = errors.New(
		"GetSupplierCylindersQuery must be created via NewGetSupplierCylindersQuery constructor",
	)
)

// GetSupplierCylindersQuery retrieves the supplier's registered cylinder fleet.
// Returns identity, pricing, and current custody for inventory screens.
//
// Example:
//
//	query, err := NewGetSupplierCylindersQuery(supplierID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetSupplierCylindersQueryHandler(db)
//
//	cylinders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve cylinders: %w", err)
//	}
//
//	for _, cyl := range cylinders {
//	    fmt.Printf("%s: %s (%s)\n", cyl.CylID, cyl.Status, cyl.Owner)
//	}
type GetSupplierCylindersQuery struct {
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSupplierCylindersQuery creates a query scoped to one supplier's fleet.
func NewGetSupplierCylindersQuery(supplierID kernel.UUID) (GetSupplierCylindersQuery, error) {
	if err := supplierID.Validate(); err != nil {
		return GetSupplierCylindersQuery{}, err
	}

	return GetSupplierCylindersQuery{
		supplierID: supplierID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSupplierCylindersQueryIsNotConstructed if validation fails.
func (q GetSupplierCylindersQuery) Validate() error {
	return q.guard.Validate(ErrGetSupplierCylindersQueryIsNotConstructed)
}

// SupplierID returns the supplier whose fleet is being read.
func (q GetSupplierCylindersQuery) SupplierID() kernel.UUID {
	return q.supplierID
}

// GetSupplierCylindersQueryResponse represents one cylinder in the fleet read model.
// Status, owner, and condition carry the persisted string literals directly.
type GetSupplierCylindersQueryResponse struct {
	CylID        string
	Size         string
	Brand        string
	Price        float64
	RefillPrice  float64
	Condition    string
	Status       string
	Owner        string
	LocationText string
}
