package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrSaveLoyaltyProgramCommandIsNotConstructed = errors.New(
	"save loyalty program command is not constructed")

// SaveLoyaltyProgramCommand replaces the supplier's loyalty program wholesale.
//
//nolint:recvcheck //using for validation
type SaveLoyaltyProgramCommand struct {
	supplierID    kernel.UUID
	pointsDivisor int
	tiers         []loyalty.Tier
	rules         []loyalty.Rule

	guard guard.ConstructorGuard
}

func NewSaveLoyaltyProgramCommand(supplierID kernel.UUID, pointsDivisor int,
	tiers []loyalty.Tier, rules []loyalty.Rule) (SaveLoyaltyProgramCommand, error) {
	cmd := SaveLoyaltyProgramCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setSupplierID(supplierID),
		cmd.setPointsDivisor(pointsDivisor),
	)
	if err != nil {
		return SaveLoyaltyProgramCommand{}, err
	}

	cmd.tiers = tiers
	cmd.rules = rules

	return cmd, nil
}

func (c SaveLoyaltyProgramCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

func (c SaveLoyaltyProgramCommand) PointsDivisor() int {
	return c.pointsDivisor
}

func (c SaveLoyaltyProgramCommand) Tiers() []loyalty.Tier {
	return c.tiers
}

func (c SaveLoyaltyProgramCommand) Rules() []loyalty.Rule {
	return c.rules
}

func (c SaveLoyaltyProgramCommand) Validate() error {
	return c.guard.Validate(ErrSaveLoyaltyProgramCommandIsNotConstructed)
}

func (c *SaveLoyaltyProgramCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplierID", err)
	}

	c.supplierID = supplierID

	return nil
}

func (c *SaveLoyaltyProgramCommand) setPointsDivisor(pointsDivisor int) error {
	if pointsDivisor < 1 {
		return errs.NewValueIsOutOfRangeError("pointsDivisor", pointsDivisor, 1, nil)
	}

	c.pointsDivisor = pointsDivisor

	return nil
}
