package ports

import (
	"context"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"
)

// LoyaltyRepository defines the persistence contract for loyalty programs
// and redemptions. A supplier owns at most one program, replaced wholesale
// on save.
type LoyaltyRepository interface {
	// SaveProgram stores the supplier's program, replacing any previous
	// definition including its tiers and rules.
	SaveProgram(ctx context.Context, program *loyalty.Program) error

	// GetProgram retrieves the supplier's program.
	// Returns errs.ObjectNotFoundError when the supplier has none.
	GetProgram(ctx context.Context, supplierID kernel.UUID) (*loyalty.Program, error)

	// AddRedemption persists a new redemption request with its frozen
	// eligibility verdict.
	AddRedemption(ctx context.Context, redemption *loyalty.Redemption) error

	// UpdateRedemption persists processing changes to a redemption.
	UpdateRedemption(ctx context.Context, redemption *loyalty.Redemption) error

	// GetRedemption retrieves a redemption by its unique identifier.
	GetRedemption(ctx context.Context, id kernel.UUID) (*loyalty.Redemption, error)
}
