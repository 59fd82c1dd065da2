package commands

import (
	"context"

	"go.uber.org/zap"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/core/domain/services"
)

// cylinderProjector applies the ownership synchronizer to the cylinder
// referenced by an order, in its own transaction. Order transitions commit
// first and are authoritative; a failed projection leaves a transient
// inconsistency that the resync command and the reconciliation job repair.
type cylinderProjector struct {
	uowFactory UoWFactory
	logger     *zap.Logger
}

func newCylinderProjector(uowFactory UoWFactory, logger *zap.Logger) cylinderProjector {
	return cylinderProjector{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Project loads the order's cylinder, applies the status projection and
// persists the result. Orders without a recorded cylinder and statuses
// without a custody meaning are no-ops. Safe to re-run any number of times.
func (p cylinderProjector) Project(ctx context.Context, o *order.Order) error {
	return p.project(ctx, o, false)
}

// Repair re-projects an order found by the reconciliation sweep. Delivered
// orders are terminal: once their projection has landed, the cylinder state
// belongs to later flows (a lost report, a supplier correction, a newer
// refill order). A Delivered projection is applied only while the cylinder
// still shows the in-transit custody the delivery started from.
func (p cylinderProjector) Repair(ctx context.Context, o *order.Order) error {
	return p.project(ctx, o, true)
}

func (p cylinderProjector) project(ctx context.Context, o *order.Order, repair bool) error {
	if !o.Snapshot().HasCylinder() {
		return nil
	}

	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cylinderRepo := uow.CylinderRepository()
	cyl, err := cylinderRepo.Get(ctx, o.SupplierID(), o.Snapshot().CylID())
	if err != nil {
		return err
	}

	if repair && o.Status() == order.Delivered &&
		(cyl.Status() != cylinder.StatusInTransit || cyl.Owner() != cylinder.OwnerAgent) {
		return nil
	}

	applied, err := services.NewOwnershipSynchronizer().Apply(cyl, o.Status())
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	if err = cylinderRepo.Update(ctx, cyl); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ProjectLogged runs Project and swallows failures after logging them.
// Used at the order transition boundary, where the committed order change
// must stay visible even when the cylinder write fails.
func (p cylinderProjector) ProjectLogged(ctx context.Context, o *order.Order) {
	if err := p.Project(ctx, o); err != nil {
		p.logger.Warn("cylinder projection failed, awaiting reconciliation",
			zap.String("orderID", o.ID().String()),
			zap.String("cylID", o.Snapshot().CylID()),
			zap.String("orderStatus", o.Status().String()),
			zap.Error(err),
		)
	}
}
