package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand represents the supplier assigning a delivery agent to
// an order.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID
	orderID    kernel.UUID
	agentID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates an agent assignment command.
func NewAssignAgentCommand(supplierID, orderID, agentID kernel.UUID) (AssignAgentCommand, error) {
	command := AssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSupplierID(supplierID),
		command.setOrderID(orderID),
		command.setAgentID(agentID),
	); err != nil {
		return AssignAgentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// SupplierID returns the assigning supplier.
func (c AssignAgentCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// OrderID returns the order being assigned.
func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the agent receiving the assignment.
func (c AssignAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *AssignAgentCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *AssignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
