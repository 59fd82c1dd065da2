package commands

import (
	"context"

	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/pkg/errs"
)

// ReviewOrderCommandHandler handles the supplier's approve/reject verdict.
// Rejection is the compensating action for a booking: when a rejected order
// had booked a cylinder, the handler releases it back to inventory in the
// same transaction. Rejecting an already rejected order is a no-op, so the
// release never double-fires.
type ReviewOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewReviewOrderCommandHandler creates a handler for order review.
func NewReviewOrderCommandHandler(uowFactory UoWFactory) ReviewOrderCommandHandler {
	return ReviewOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the verdict. Only the supplier the order targets may review it.
func (h ReviewOrderCommandHandler) Handle(ctx context.Context, cmd ReviewOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	reviewed, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !reviewed.SupplierID().IsEqual(cmd.SupplierID()) {
		return errs.NewActionIsForbiddenError("review an order of another supplier")
	}

	if cmd.Approve() {
		if err = reviewed.Approve(); err != nil {
			return err
		}
	} else {
		if err = h.reject(ctx, uow, reviewed); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, reviewed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ReviewOrderCommandHandler) reject(ctx context.Context, uow UoW, reviewed *order.Order) error {
	changed, err := reviewed.Reject()
	if err != nil {
		return err
	}
	if !changed || !reviewed.Snapshot().HasCylinder() {
		return nil
	}

	return uow.CylinderRepository().Release(ctx, reviewed.SupplierID(), reviewed.Snapshot().CylID())
}
