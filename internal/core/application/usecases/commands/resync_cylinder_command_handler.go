package commands

import (
	"context"

	"go.uber.org/zap"
)

// ResyncCylinderCommandHandler re-runs the ownership projection for one
// order. Unlike the transition-boundary projection, failures here are
// returned to the caller: resync is the explicit repair path.
type ResyncCylinderCommandHandler struct {
	uowFactory UoWFactory
	projector  cylinderProjector
}

// NewResyncCylinderCommandHandler creates a handler for cylinder resync.
func NewResyncCylinderCommandHandler(uowFactory UoWFactory, logger *zap.Logger) ResyncCylinderCommandHandler {
	return ResyncCylinderCommandHandler{
		uowFactory: uowFactory,
		projector:  newCylinderProjector(uowFactory, logger),
	}
}

// Handle loads the order and applies the projection. Re-running it any
// number of times leaves the cylinder in the same state.
func (h ResyncCylinderCommandHandler) Handle(ctx context.Context, cmd ResyncCylinderCommand) error {
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

	resynced, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.projector.Project(ctx, resynced)
}
