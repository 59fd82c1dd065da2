package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrPickupAtSupplierCommandIsNotConstructed = errors.New(
	"PickupAtSupplierCommand must be created via NewPickupAtSupplierCommand constructor",
)

// PickupAtSupplierCommand represents the agent picking up a refill order at
// the supplier, authenticated by the supplier's one-time code.
type PickupAtSupplierCommand struct { //nolint:recvcheck //using for validation
	agentID       kernel.UUID
	orderID       kernel.UUID
	otp           string
	agentLocation *kernel.Location

	guard guard.ConstructorGuard
}

// NewPickupAtSupplierCommand creates an OTP pickup command.
func NewPickupAtSupplierCommand(
	agentID kernel.UUID,
	orderID kernel.UUID,
	otp string,
	agentLocation *kernel.Location,
) (PickupAtSupplierCommand, error) {
	command := PickupAtSupplierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setOrderID(orderID),
		command.setOTP(otp),
		command.setAgentLocation(agentLocation),
	); err != nil {
		return PickupAtSupplierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupAtSupplierCommand) Validate() error {
	return c.guard.Validate(ErrPickupAtSupplierCommandIsNotConstructed)
}

// AgentID returns the picking agent.
func (c PickupAtSupplierCommand) AgentID() kernel.UUID {
	return c.agentID
}

// OrderID returns the refill order.
func (c PickupAtSupplierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OTP returns the presented one-time code.
func (c PickupAtSupplierCommand) OTP() string {
	return c.otp
}

// AgentLocation returns where the agent picked up, or nil.
func (c PickupAtSupplierCommand) AgentLocation() *kernel.Location {
	return c.agentLocation
}

func (c *PickupAtSupplierCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *PickupAtSupplierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PickupAtSupplierCommand) setOTP(otp string) error {
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}

	c.otp = otp
	return nil
}

func (c *PickupAtSupplierCommand) setAgentLocation(agentLocation *kernel.Location) error {
	if agentLocation != nil {
		if err := agentLocation.Validate(); err != nil {
			return err
		}
	}

	c.agentLocation = agentLocation
	return nil
}
