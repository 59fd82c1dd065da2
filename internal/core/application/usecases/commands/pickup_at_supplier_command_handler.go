package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gascylinder/internal/core/domain/services"
)

// PickupAtSupplierCommandHandler handles the OTP-authenticated pickup of a
// refill order. Code consumption and the status transition land in the same
// order write, so a concurrently replayed code can never authenticate twice.
type PickupAtSupplierCommandHandler struct {
	uowFactory UoWFactory
	verifier   services.HandoffVerifier
	projector  cylinderProjector
}

// NewPickupAtSupplierCommandHandler creates a handler for OTP pickups.
func NewPickupAtSupplierCommandHandler(
	uowFactory UoWFactory,
	verifier services.HandoffVerifier,
	logger *zap.Logger,
) PickupAtSupplierCommandHandler {
	return PickupAtSupplierCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		projector:  newCylinderProjector(uowFactory, logger),
	}
}

// Handle verifies the code, moves the order to InTransit and projects the
// custody change onto the cylinder registry.
func (h PickupAtSupplierCommandHandler) Handle(ctx context.Context, cmd PickupAtSupplierCommand) error {
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

	if err = h.verifier.VerifyPickup(picked, cmd.OTP(), time.Now()); err != nil {
		return err
	}

	if err = picked.PickupAtSupplier(cmd.AgentID()); err != nil {
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
