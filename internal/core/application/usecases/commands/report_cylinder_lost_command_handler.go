package commands

import (
	"context"

	"gascylinder/internal/pkg/errs"
)

// ReportCylinderLostCommandHandler handles customer lost reports. Only the
// customer in possession, established by a delivered order carrying the
// cylinder, may report it.
type ReportCylinderLostCommandHandler struct {
	uowFactory UoWFactory
}

// NewReportCylinderLostCommandHandler creates a handler for lost reports.
func NewReportCylinderLostCommandHandler(uowFactory UoWFactory) ReportCylinderLostCommandHandler {
	return ReportCylinderLostCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies possession, marks the cylinder Lost and persists it.
func (h ReportCylinderLostCommandHandler) Handle(ctx context.Context, cmd ReportCylinderLostCommand) error {
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

	possessed, err := uow.OrderRepository().HasDeliveredCylinder(
		ctx, cmd.SupplierID(), cmd.CustomerID(), cmd.CylID())
	if err != nil {
		return err
	}
	if !possessed {
		return errs.NewActionIsForbiddenError("report a cylinder the customer does not possess")
	}

	cylinderRepo := uow.CylinderRepository()
	cyl, err := cylinderRepo.Get(ctx, cmd.SupplierID(), cmd.CylID())
	if err != nil {
		return err
	}

	if err = cyl.ReportLost(); err != nil {
		return err
	}

	if err = cylinderRepo.Update(ctx, cyl); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
