package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/guard"
)

var ErrRespondAssignmentCommandIsNotConstructed = errors.New(
	"RespondAssignmentCommand must be created via NewRespondAssignmentCommand constructor",
)

// RespondAssignmentCommand represents the agent accepting or declining an
// assignment.
type RespondAssignmentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	orderID kernel.UUID
	accept  bool

	guard guard.ConstructorGuard
}

// NewRespondAssignmentCommand creates an assignment response command.
func NewRespondAssignmentCommand(agentID, orderID kernel.UUID, accept bool) (RespondAssignmentCommand, error) {
	command := RespondAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setOrderID(orderID),
	); err != nil {
		return RespondAssignmentCommand{}, err
	}

	command.accept = accept
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRespondAssignmentCommandIsNotConstructed)
}

// AgentID returns the responding agent.
func (c RespondAssignmentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// OrderID returns the assigned order.
func (c RespondAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Accept reports whether the agent accepted the assignment.
func (c RespondAssignmentCommand) Accept() bool {
	return c.accept
}

func (c *RespondAssignmentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *RespondAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
