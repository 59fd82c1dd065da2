package commands

import (
	"context"

	"go.uber.org/zap"
)

// PickupOrderCommandHandler handles the scan-match pickup of a regular
// order. The scanned label must match the order's recorded cylinder; the
// committed transition is then projected onto the registry.
type PickupOrderCommandHandler struct {
	uowFactory UoWFactory
	projector  cylinderProjector
}

// NewPickupOrderCommandHandler creates a handler for scan pickups.
func NewPickupOrderCommandHandler(uowFactory UoWFactory, logger *zap.Logger) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{
		uowFactory: uowFactory,
		projector:  newCylinderProjector(uowFactory, logger),
	}
}

// Handle moves the order to InTransit after the scan matches.
func (h PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) error {
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
	picked, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = picked.PickupByScan(cmd.AgentID(), cmd.ScannedCylID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, picked); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.projector.ProjectLogged(ctx, picked)
	return nil
}
