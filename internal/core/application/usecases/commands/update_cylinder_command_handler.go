package commands

import (
	"context"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
)

// UpdateCylinderCommandHandler handles supplier edits to a cylinder.
// The aggregate enforces the Booked and Delivered restrictions; the handler
// only merges the requested changes onto the loaded state.
type UpdateCylinderCommandHandler struct {
	uowFactory CylinderUoWFactory
}

// NewUpdateCylinderCommandHandler creates a handler for cylinder edits.
func NewUpdateCylinderCommandHandler(uowFactory CylinderUoWFactory) UpdateCylinderCommandHandler {
	return UpdateCylinderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the cylinder, applies the status correction and field edits,
// and persists the result.
func (h UpdateCylinderCommandHandler) Handle(ctx context.Context, cmd UpdateCylinderCommand) error {
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

	cylinderRepo := uow.CylinderRepository()
	cyl, err := cylinderRepo.Get(ctx, cmd.SupplierID(), cmd.CylID())
	if err != nil {
		return err
	}

	if cmd.Status() != nil {
		if err = cyl.CorrectStatus(*cmd.Status(), *cmd.Owner()); err != nil {
			return err
		}
	}

	if err = applyCylinderEdit(cyl, cmd); err != nil {
		return err
	}

	if err = cylinderRepo.Update(ctx, cyl); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func applyCylinderEdit(cyl *cylinder.Cylinder, cmd UpdateCylinderCommand) error {
	if cmd.RefillPriceOnly() {
		return cyl.UpdateRefillPrice(*cmd.RefillPrice())
	}
	if !hasFieldEdit(cmd) {
		return nil
	}

	size := cyl.Size()
	if cmd.Size() != nil {
		size = *cmd.Size()
	}
	brand := cyl.Brand()
	if cmd.Brand() != nil {
		brand = *cmd.Brand()
	}
	price := cyl.Price()
	if cmd.Price() != nil {
		price = *cmd.Price()
	}
	refillPrice := cyl.RefillPrice()
	if cmd.RefillPrice() != nil {
		refillPrice = *cmd.RefillPrice()
	}
	condition := cyl.Condition()
	if cmd.Condition() != nil {
		condition = *cmd.Condition()
	}
	locationText := cyl.LocationText()
	if cmd.LocationText() != nil {
		locationText = *cmd.LocationText()
	}
	var location *kernel.Location
	if cmd.Location() != nil {
		location = cmd.Location()
	} else {
		location = cyl.Location()
	}

	return cyl.UpdateDetails(size, brand, price, refillPrice, condition, locationText, location)
}

func hasFieldEdit(cmd UpdateCylinderCommand) bool {
	return cmd.Size() != nil || cmd.Brand() != nil || cmd.Price() != nil ||
		cmd.RefillPrice() != nil || cmd.Condition() != nil ||
		cmd.LocationText() != nil || cmd.Location() != nil
}
