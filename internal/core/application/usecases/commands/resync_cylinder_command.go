package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var ErrResyncCylinderCommandIsNotConstructed = errors.New(
	"ResyncCylinderCommand must be created via NewResyncCylinderCommand constructor",
)

// ResyncCylinderCommand requests an idempotent re-projection of an order's
// status onto its cylinder. Used to repair the transient inconsistency left
// by a failed projection at a transition boundary.
type ResyncCylinderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResyncCylinderCommand creates a resync command.
func NewResyncCylinderCommand(orderID kernel.UUID) (ResyncCylinderCommand, error) {
	command := ResyncCylinderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return ResyncCylinderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResyncCylinderCommand) Validate() error {
	return c.guard.Validate(ErrResyncCylinderCommandIsNotConstructed)
}

// OrderID returns the order whose cylinder should be reconciled.
func (c ResyncCylinderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ResyncCylinderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
