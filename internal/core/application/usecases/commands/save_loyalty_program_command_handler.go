package commands

import (
	"context"

	"gascylinder/internal/core/domain/model/loyalty"
)

type SaveLoyaltyProgramCommandHandler struct {
	uowFactory LoyaltyUoWFactory
}

func NewSaveLoyaltyProgramCommandHandler(uowFactory LoyaltyUoWFactory) SaveLoyaltyProgramCommandHandler {
	return SaveLoyaltyProgramCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SaveLoyaltyProgramCommandHandler) Handle(ctx context.Context,
	cmd SaveLoyaltyProgramCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	program, err := loyalty.NewProgram(cmd.SupplierID(), cmd.PointsDivisor(),
		cmd.Tiers(), cmd.Rules())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err = uow.LoyaltyRepository().SaveProgram(ctx, program); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
