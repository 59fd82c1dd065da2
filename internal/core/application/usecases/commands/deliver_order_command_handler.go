package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/core/domain/services"
)

// DeliverOrderCommandHandler handles the final handoff to the customer.
// Both the OTP and QR paths independently verify the cylinder identity
// before the transition proceeds; a mismatch aborts without changing the
// order. The committed transition is projected onto the registry.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	verifier   services.HandoffVerifier
	projector  cylinderProjector
}

// NewDeliverOrderCommandHandler creates a handler for deliveries.
func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory,
	verifier services.HandoffVerifier,
	logger *zap.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		projector:  newCylinderProjector(uowFactory, logger),
	}
}

// Handle authenticates the handoff, moves the order to Delivered and
// projects the custody change onto the cylinder registry.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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
	delivered, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authenticate(delivered, cmd); err != nil {
		return err
	}

	if err = delivered.Deliver(cmd.AgentID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, delivered); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.projector.ProjectLogged(ctx, delivered)
	return nil
}

func (h DeliverOrderCommandHandler) authenticate(delivered *order.Order, cmd DeliverOrderCommand) error {
	if cmd.ByQR() {
		return h.verifier.VerifyDeliveryScan(delivered, *cmd.QROrderID(), cmd.QRCylID())
	}
	return h.verifier.VerifyDelivery(delivered, cmd.OTP(), cmd.ScannedCylID(), time.Now())
}
