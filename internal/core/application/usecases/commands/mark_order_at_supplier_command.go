package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var ErrMarkOrderAtSupplierCommandIsNotConstructed = errors.New(
	"MarkOrderAtSupplierCommand must be created via NewMarkOrderAtSupplierCommand constructor",
)

// MarkOrderAtSupplierCommand represents the supplier recording that a refill
// order's cylinder has arrived at their premises.
type MarkOrderAtSupplierCommand struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID
	orderID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderAtSupplierCommand creates the command.
func NewMarkOrderAtSupplierCommand(supplierID, orderID kernel.UUID) (MarkOrderAtSupplierCommand, error) {
	command := MarkOrderAtSupplierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSupplierID(supplierID),
		command.setOrderID(orderID),
	); err != nil {
		return MarkOrderAtSupplierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderAtSupplierCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderAtSupplierCommandIsNotConstructed)
}

// SupplierID returns the acting supplier.
func (c MarkOrderAtSupplierCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// OrderID returns the refill order.
func (c MarkOrderAtSupplierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkOrderAtSupplierCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *MarkOrderAtSupplierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
