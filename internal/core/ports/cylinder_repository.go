// Package ports defines repository interfaces for the gas cylinder domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
)

// CylinderRepository defines the persistence contract for cylinder aggregates.
// Cylinders are identified by the (supplierID, cylID) pair, where cylID is
// the supplier-scoped label printed on the unit.
type CylinderRepository interface {
	// Add persists a new cylinder aggregate to storage.
	// Returns errs.ObjectAlreadyExistsError when the supplier already
	// registered the label.
	Add(ctx context.Context, aggregate *cylinder.Cylinder) error

	// Update persists changes to an existing cylinder aggregate.
	Update(ctx context.Context, aggregate *cylinder.Cylinder) error

	// Get retrieves a cylinder aggregate by its identity pair.
	// Returns errs.ObjectNotFoundError when the supplier has no such label.
	Get(ctx context.Context, supplierID kernel.UUID, cylID string) (*cylinder.Cylinder, error)

	// GetAllBySupplier retrieves every cylinder registered by the supplier.
	GetAllBySupplier(ctx context.Context, supplierID kernel.UUID) ([]*cylinder.Cylinder, error)

	// Book reserves an Available cylinder for an order. The implementation
	// must perform the Available-to-Booked transition as a single
	// conditional write so that exactly one of any number of concurrent
	// bookings succeeds. Returns cylinder.ErrNotAvailable when the
	// cylinder exists but is not Available, and errs.ObjectNotFoundError
	// when it does not exist.
	Book(ctx context.Context, supplierID kernel.UUID, cylID string) error

	// Release returns a Booked cylinder to Available. Releasing a cylinder
	// that is not Booked is a no-op, so the operation is safe to retry.
	Release(ctx context.Context, supplierID kernel.UUID, cylID string) error
}
