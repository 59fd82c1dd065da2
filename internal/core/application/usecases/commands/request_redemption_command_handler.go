package commands

import (
	"context"
	"time"

	"gascylinder/internal/core/domain/model/loyalty"
)

// RequestRedemptionCommandHandler records a customer's reward redemption
// request, evaluating eligibility against the rule's trigger at request
// time.
type RequestRedemptionCommandHandler struct {
	uowFactory LoyaltyUoWFactory
}

// NewRequestRedemptionCommandHandler creates a handler for redemption
// requests.
func NewRequestRedemptionCommandHandler(uowFactory LoyaltyUoWFactory) RequestRedemptionCommandHandler {
	return RequestRedemptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle resolves the rule, counts the customer's qualifying deliveries and
// files the redemption with the eligibility verdict.
func (h RequestRedemptionCommandHandler) Handle(ctx context.Context,
	cmd RequestRedemptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	program, err := uow.LoyaltyRepository().GetProgram(ctx, cmd.SupplierID())
	if err != nil {
		return err
	}

	rule, err := program.ActiveRule(cmd.RuleID())
	if err != nil {
		return err
	}

	refillOnly := rule.TriggerType() == loyalty.TriggerTypeNthRefill

	priorCount, err := uow.OrderRepository().CountDelivered(ctx,
		cmd.SupplierID(), cmd.CustomerID(), refillOnly)
	if err != nil {
		return err
	}

	redemption, err := loyalty.NewRedemption(cmd.RedemptionID(), cmd.SupplierID(),
		cmd.CustomerID(), cmd.OrderID(), cmd.RuleID(),
		rule.Satisfied(priorCount), time.Now())
	if err != nil {
		return err
	}

	if err = uow.LoyaltyRepository().AddRedemption(ctx, redemption); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
