package commands

import (
	"context"

	"go.uber.org/zap"

	"gascylinder/internal/pkg/errs"
)

// MarkOrderAtSupplierCommandHandler moves a refill order to AtSupplier and
// projects the new custody onto the cylinder. The projection runs after the
// order commit and its failures are logged, not surfaced.
type MarkOrderAtSupplierCommandHandler struct {
	uowFactory UoWFactory
	projector  cylinderProjector
}

// NewMarkOrderAtSupplierCommandHandler creates the handler.
func NewMarkOrderAtSupplierCommandHandler(uowFactory UoWFactory, logger *zap.Logger) MarkOrderAtSupplierCommandHandler {
	return MarkOrderAtSupplierCommandHandler{
		uowFactory: uowFactory,
		projector:  newCylinderProjector(uowFactory, logger),
	}
}

// Handle marks the order AtSupplier. Refill orders only; the aggregate
// rejects other types.
func (h MarkOrderAtSupplierCommandHandler) Handle(ctx context.Context, cmd MarkOrderAtSupplierCommand) error {
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
	marked, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !marked.SupplierID().IsEqual(cmd.SupplierID()) {
		return errs.NewActionIsForbiddenError("mark an order of another supplier")
	}

	if err = marked.MarkAtSupplier(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, marked); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.projector.ProjectLogged(ctx, marked)
	return nil
}
