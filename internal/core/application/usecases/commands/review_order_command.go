package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var ErrReviewOrderCommandIsNotConstructed = errors.New(
	"ReviewOrderCommand must be created via NewReviewOrderCommand constructor",
)

// ReviewOrderCommand represents the supplier's approve-or-reject verdict on
// an order.
type ReviewOrderCommand struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID
	orderID    kernel.UUID
	approve    bool

	guard guard.ConstructorGuard
}

// NewReviewOrderCommand creates an order review command.
func NewReviewOrderCommand(supplierID, orderID kernel.UUID, approve bool) (ReviewOrderCommand, error) {
	command := ReviewOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSupplierID(supplierID),
		command.setOrderID(orderID),
	); err != nil {
		return ReviewOrderCommand{}, err
	}

	command.approve = approve
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewOrderCommand) Validate() error {
	return c.guard.Validate(ErrReviewOrderCommandIsNotConstructed)
}

// SupplierID returns the reviewing supplier.
func (c ReviewOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// OrderID returns the order under review.
func (c ReviewOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Approve reports whether the verdict is approval.
func (c ReviewOrderCommand) Approve() bool {
	return c.approve
}

func (c *ReviewOrderCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *ReviewOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
