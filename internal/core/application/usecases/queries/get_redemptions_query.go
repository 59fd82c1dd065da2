package queries

import (
	"errors"
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var (
	ErrGetRedemptionsQueryIsNotConstructed = errors.New(
		"GetRedemptionsQuery must be created via NewGetRedemptionsQuery constructor",
	)
)

// GetRedemptionsQuery retrieves a supplier's redemption requests, most recent
// first, for the processing queue.
//
// Example:
//
//	query, err := NewGetRedemptionsQuery(supplierID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetRedemptionsQueryHandler(db)
//
//	redemptions, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get redemptions: %w", err)
//	}
//
//	for _, r := range redemptions {
//	    fmt.Printf("%s: %s (eligible=%t)\n", r.ID, r.Status, r.Eligible)
//	}
type GetRedemptionsQuery struct {
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRedemptionsQuery creates a query scoped to one supplier's redemptions.
func NewGetRedemptionsQuery(supplierID kernel.UUID) (GetRedemptionsQuery, error) {
	if err := supplierID.Validate(); err != nil {
		return GetRedemptionsQuery{}, err
	}

	return GetRedemptionsQuery{
		supplierID: supplierID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRedemptionsQueryIsNotConstructed if validation fails.
func (q GetRedemptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetRedemptionsQueryIsNotConstructed)
}

// SupplierID returns the supplier whose redemptions are being read.
func (q GetRedemptionsQuery) SupplierID() kernel.UUID {
	return q.supplierID
}

// GetRedemptionsQueryResponse represents one redemption in the processing
// queue read model. Status carries the persisted string literal; processing
// fields are nil until a supplier decides.
type GetRedemptionsQueryResponse struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	OrderID     *kernel.UUID
	RuleID      kernel.UUID
	Eligible    bool
	Status      string
	RequestedAt time.Time
	ProcessedBy *kernel.UUID
	ProcessedAt *time.Time
}
