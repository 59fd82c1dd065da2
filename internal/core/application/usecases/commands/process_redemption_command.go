package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrProcessRedemptionCommandIsNotConstructed = errors.New(
	"process redemption command is not constructed")

//nolint:recvcheck //using for validation
type ProcessRedemptionCommand struct {
	supplierID   kernel.UUID
	redemptionID kernel.UUID
	approve      bool

	guard guard.ConstructorGuard
}

func NewProcessRedemptionCommand(supplierID, redemptionID kernel.UUID,
	approve bool) (ProcessRedemptionCommand, error) {
	cmd := ProcessRedemptionCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setSupplierID(supplierID),
		cmd.setRedemptionID(redemptionID),
	)
	if err != nil {
		return ProcessRedemptionCommand{}, err
	}

	cmd.approve = approve

	return cmd, nil
}

func (c ProcessRedemptionCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

func (c ProcessRedemptionCommand) RedemptionID() kernel.UUID {
	return c.redemptionID
}

func (c ProcessRedemptionCommand) Approve() bool {
	return c.approve
}

func (c ProcessRedemptionCommand) Validate() error {
	return c.guard.Validate(ErrProcessRedemptionCommandIsNotConstructed)
}

func (c *ProcessRedemptionCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplierID", err)
	}

	c.supplierID = supplierID

	return nil
}

func (c *ProcessRedemptionCommand) setRedemptionID(redemptionID kernel.UUID) error {
	if err := redemptionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("redemptionID", err)
	}

	c.redemptionID = redemptionID

	return nil
}
