package commands

import (
	"context"
	"time"

	"gascylinder/internal/pkg/errs"
)

// ProcessRedemptionCommandHandler applies the supplier's verdict to a
// pending redemption.
type ProcessRedemptionCommandHandler struct {
	uowFactory LoyaltyUoWFactory
}

// NewProcessRedemptionCommandHandler creates a handler for redemption
// verdicts.
func NewProcessRedemptionCommandHandler(uowFactory LoyaltyUoWFactory) ProcessRedemptionCommandHandler {
	return ProcessRedemptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks the redemption belongs to the supplier, then approves or
// rejects it.
func (h ProcessRedemptionCommandHandler) Handle(ctx context.Context,
	cmd ProcessRedemptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	redemption, err := uow.LoyaltyRepository().GetRedemption(ctx, cmd.RedemptionID())
	if err != nil {
		return err
	}

	if !redemption.SupplierID().IsEqual(cmd.SupplierID()) {
		return errs.NewActionIsForbiddenError("process a redemption of another supplier")
	}

	if cmd.Approve() {
		err = redemption.Approve(cmd.SupplierID(), time.Now())
	} else {
		err = redemption.Reject(cmd.SupplierID(), time.Now())
	}

	if err != nil {
		return err
	}

	if err = uow.LoyaltyRepository().UpdateRedemption(ctx, redemption); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
