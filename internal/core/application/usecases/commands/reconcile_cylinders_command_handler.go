package commands

import (
	"context"

	"go.uber.org/zap"

	"gascylinder/internal/core/domain/model/order"
)

// ReconcileCylindersCommandHandler sweeps every order whose status carries a
// custody meaning and re-runs the ownership projection for it. A projection
// that failed at a transition boundary gets repaired on the next sweep
// without anyone having to notice first.
type ReconcileCylindersCommandHandler struct {
	uowFactory UoWFactory
	projector  cylinderProjector
	logger     *zap.Logger
}

// NewReconcileCylindersCommandHandler creates a handler for the sweep.
func NewReconcileCylindersCommandHandler(uowFactory UoWFactory, logger *zap.Logger) ReconcileCylindersCommandHandler {
	return ReconcileCylindersCommandHandler{
		uowFactory: uowFactory,
		projector:  newCylinderProjector(uowFactory, logger),
		logger:     logger,
	}
}

// Handle loads the orders whose status carries a custody meaning and
// re-projects each onto its cylinder. Delivered orders are repaired only
// while the cylinder is still stuck in the in-transit state; see
// cylinderProjector.Repair. Per-order failures are logged and do not stop
// the sweep; the whole pass is idempotent.
func (h ReconcileCylindersCommandHandler) Handle(ctx context.Context, cmd ReconcileCylindersCommand) error {
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

	orders, err := uow.OrderRepository().GetAllInStatuses(
		ctx, order.AtSupplier, order.InTransit, order.Delivered)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	failed := 0
	for _, o := range orders {
		if projectErr := h.projector.Repair(ctx, o); projectErr != nil {
			failed++
			h.logger.Warn("reconciliation sweep could not project order",
				zap.String("orderID", o.ID().String()),
				zap.String("cylID", o.Snapshot().CylID()),
				zap.Error(projectErr),
			)
		}
	}

	if failed > 0 {
		h.logger.Info("reconciliation sweep finished with failures",
			zap.Int("swept", len(orders)),
			zap.Int("failed", failed),
		)
	}

	return nil
}
