package commands

import (
	"context"
)

// RespondAssignmentCommandHandler handles the agent's accept/decline answer.
// The aggregate enforces that only the assigned agent may respond; a decline
// clears the assignment and returns the order to the supplier's queue.
type RespondAssignmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRespondAssignmentCommandHandler creates a handler for assignment responses.
func NewRespondAssignmentCommandHandler(uowFactory OrderUoWFactory) RespondAssignmentCommandHandler {
	return RespondAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the agent's response.
func (h RespondAssignmentCommandHandler) Handle(ctx context.Context, cmd RespondAssignmentCommand) error {
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

	orderRepo := uow.OrderRepository()
	assigned, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Accept() {
		err = assigned.Accept(cmd.AgentID())
	} else {
		err = assigned.Decline(cmd.AgentID())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, assigned); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
