package commands

import (
	"context"

	"gascylinder/internal/pkg/errs"
)

// AssignAgentCommandHandler handles agent assignment. Approved orders can
// always be assigned; refill orders can also be assigned while AtSupplier,
// and reassignment before acceptance replaces the previous agent.
type AssignAgentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignAgentCommandHandler creates a handler for agent assignment.
func NewAssignAgentCommandHandler(uowFactory OrderUoWFactory) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the agent. Only the supplier the order targets may assign.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) error {
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

	if !assigned.SupplierID().IsEqual(cmd.SupplierID()) {
		return errs.NewActionIsForbiddenError("assign an order of another supplier")
	}

	if err = assigned.Assign(cmd.AgentID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, assigned); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
