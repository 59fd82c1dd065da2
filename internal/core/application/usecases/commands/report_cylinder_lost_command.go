package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrReportCylinderLostCommandIsNotConstructed = errors.New(
	"ReportCylinderLostCommand must be created via NewReportCylinderLostCommand constructor",
)

// ReportCylinderLostCommand represents a customer reporting a delivered
// cylinder as lost.
type ReportCylinderLostCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	supplierID kernel.UUID
	cylID      string

	guard guard.ConstructorGuard
}

// NewReportCylinderLostCommand creates a lost-report command.
func NewReportCylinderLostCommand(
	customerID kernel.UUID,
	supplierID kernel.UUID,
	cylID string,
) (ReportCylinderLostCommand, error) {
	command := ReportCylinderLostCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setSupplierID(supplierID),
		command.setCylID(cylID),
	); err != nil {
		return ReportCylinderLostCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportCylinderLostCommand) Validate() error {
	return c.guard.Validate(ErrReportCylinderLostCommandIsNotConstructed)
}

// CustomerID returns the reporting customer.
func (c ReportCylinderLostCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// SupplierID returns the supplier that owns the cylinder record.
func (c ReportCylinderLostCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// CylID returns the cylinder label being reported.
func (c ReportCylinderLostCommand) CylID() string {
	return c.cylID
}

func (c *ReportCylinderLostCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *ReportCylinderLostCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *ReportCylinderLostCommand) setCylID(cylID string) error {
	if cylID == "" {
		return errs.NewValueIsRequiredError("cylID")
	}

	c.cylID = cylID
	return nil
}
