package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrPickupOrderCommandIsNotConstructed = errors.New(
	"PickupOrderCommand must be created via NewPickupOrderCommand constructor",
)

// PickupOrderCommand represents the agent picking up a regular order by
// scanning the cylinder label.
type PickupOrderCommand struct { //nolint:recvcheck //using for validation
	agentID       kernel.UUID
	orderID       kernel.UUID
	scannedCylID  string
	agentLocation *kernel.Location

	guard guard.ConstructorGuard
}

// NewPickupOrderCommand creates a scan pickup command. The agent location
// is optional.
func NewPickupOrderCommand(
	agentID kernel.UUID,
	orderID kernel.UUID,
	scannedCylID string,
	agentLocation *kernel.Location,
) (PickupOrderCommand, error) {
	command := PickupOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setOrderID(orderID),
		command.setScannedCylID(scannedCylID),
		command.setAgentLocation(agentLocation),
	); err != nil {
		return PickupOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickupOrderCommandIsNotConstructed)
}

// AgentID returns the picking agent.
func (c PickupOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

// OrderID returns the picked order.
func (c PickupOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ScannedCylID returns the scanned cylinder label.
func (c PickupOrderCommand) ScannedCylID() string {
	return c.scannedCylID
}

// AgentLocation returns where the agent scanned, or nil.
func (c PickupOrderCommand) AgentLocation() *kernel.Location {
	return c.agentLocation
}

func (c *PickupOrderCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *PickupOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PickupOrderCommand) setScannedCylID(scannedCylID string) error {
	if scannedCylID == "" {
		return errs.NewValueIsRequiredError("scanCylId")
	}

	c.scannedCylID = scannedCylID
	return nil
}

func (c *PickupOrderCommand) setAgentLocation(agentLocation *kernel.Location) error {
	if agentLocation != nil {
		if err := agentLocation.Validate(); err != nil {
			return err
		}
	}

	c.agentLocation = agentLocation
	return nil
}
