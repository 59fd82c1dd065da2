package ports

import (
	"context"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatuses retrieves all orders currently in any of the given
	// statuses. Used by the ownership reconciliation sweep.
	GetAllInStatuses(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)

	// CountDelivered counts the customer's historical delivered orders with
	// the supplier. When refillOnly is set, only refill orders count.
	// Feeds the loyalty eligibility check.
	CountDelivered(ctx context.Context, supplierID, customerID kernel.UUID, refillOnly bool) (int, error)

	// HasDeliveredCylinder reports whether the customer has a delivered
	// order from the supplier carrying the given cylinder label. Backs the
	// possession check for customer lost reports.
	HasDeliveredCylinder(ctx context.Context, supplierID, customerID kernel.UUID, cylID string) (bool, error)
}
