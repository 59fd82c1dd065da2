package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/pkg/guard"
)

var ErrIssueHandoffOTPCommandIsNotConstructed = errors.New(
	"IssueHandoffOTPCommand must be created via NewIssueHandoffOTPCommand constructor",
)

// IssueHandoffOTPCommand represents a request for a one-time handoff code.
// The supplier requests pickup codes for refill orders; the customer
// requests delivery codes.
type IssueHandoffOTPCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	orderID kernel.UUID
	purpose order.HandoffPurpose

	guard guard.ConstructorGuard
}

// NewIssueHandoffOTPCommand creates an OTP issue command.
func NewIssueHandoffOTPCommand(
	actorID kernel.UUID,
	orderID kernel.UUID,
	purpose order.HandoffPurpose,
) (IssueHandoffOTPCommand, error) {
	command := IssueHandoffOTPCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActorID(actorID),
		command.setOrderID(orderID),
		command.setPurpose(purpose),
	); err != nil {
		return IssueHandoffOTPCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueHandoffOTPCommand) Validate() error {
	return c.guard.Validate(ErrIssueHandoffOTPCommandIsNotConstructed)
}

// ActorID returns the requesting actor.
func (c IssueHandoffOTPCommand) ActorID() kernel.UUID {
	return c.actorID
}

// OrderID returns the order the code is bound to.
func (c IssueHandoffOTPCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Purpose returns the handoff the code authenticates.
func (c IssueHandoffOTPCommand) Purpose() order.HandoffPurpose {
	return c.purpose
}

func (c *IssueHandoffOTPCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *IssueHandoffOTPCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *IssueHandoffOTPCommand) setPurpose(purpose order.HandoffPurpose) error {
	if err := purpose.Validate(); err != nil {
		return err
	}

	c.purpose = purpose
	return nil
}
