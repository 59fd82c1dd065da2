package commands

import (
	"context"

	"gascylinder/internal/core/domain/model/cylinder"
)

// CreateCylinderCommandHandler handles cylinder registration.
// Duplicate (supplierID, cylID) pairs surface as errs.ObjectAlreadyExistsError
// from the repository.
type CreateCylinderCommandHandler struct {
	uowFactory CylinderUoWFactory
}

// NewCreateCylinderCommandHandler creates a handler for cylinder registration.
func NewCreateCylinderCommandHandler(uowFactory CylinderUoWFactory) CreateCylinderCommandHandler {
	return CreateCylinderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers the cylinder in supplier inventory, status Available.
func (h CreateCylinderCommandHandler) Handle(ctx context.Context, cmd CreateCylinderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cyl, err := cylinder.NewCylinder(
		cmd.SupplierID(), cmd.CylID(), cmd.Size(), cmd.Brand(),
		cmd.Price(), cmd.RefillPrice(), cmd.Condition(),
		cmd.LocationText(), cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CylinderRepository().Add(ctx, cyl); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
