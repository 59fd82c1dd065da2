package commands

import (
	"context"
	"time"

	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/core/domain/services"
	"gascylinder/internal/pkg/errs"
)

// IssuedOTP carries the plaintext code back to the caller. The plaintext
// exists only in this response; the order stores a salted hash.
type IssuedOTP struct {
	Code             string
	ExpiresInMinutes int
}

// IssueHandoffOTPCommandHandler issues one-time handoff codes. Pickup codes
// belong to the supplier the order targets, delivery codes to the ordering
// customer. Re-issuing replaces any outstanding code.
type IssueHandoffOTPCommandHandler struct {
	uowFactory OrderUoWFactory
	verifier   services.HandoffVerifier
}

// NewIssueHandoffOTPCommandHandler creates a handler for OTP issuance.
func NewIssueHandoffOTPCommandHandler(
	uowFactory OrderUoWFactory,
	verifier services.HandoffVerifier,
) IssueHandoffOTPCommandHandler {
	return IssueHandoffOTPCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
	}
}

// Handle issues the code and persists its hash and expiry on the order.
func (h IssueHandoffOTPCommandHandler) Handle(ctx context.Context, cmd IssueHandoffOTPCommand) (IssuedOTP, error) {
	if err := cmd.Validate(); err != nil {
		return IssuedOTP{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return IssuedOTP{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	issued, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return IssuedOTP{}, err
	}

	if err = checkIssuer(issued, cmd); err != nil {
		return IssuedOTP{}, err
	}

	now := time.Now()
	code, err := h.verifier.IssueCode(issued, cmd.Purpose(), now)
	if err != nil {
		return IssuedOTP{}, err
	}

	if err = orderRepo.Update(ctx, issued); err != nil {
		return IssuedOTP{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IssuedOTP{}, err
	}

	return IssuedOTP{
		Code:             code,
		ExpiresInMinutes: int(issued.Handoff().ExpiresAt().Sub(now).Minutes()),
	}, nil
}

func checkIssuer(issued *order.Order, cmd IssueHandoffOTPCommand) error {
	switch cmd.Purpose() {
	case order.HandoffPurposePickup:
		if !issued.SupplierID().IsEqual(cmd.ActorID()) {
			return errs.NewActionIsForbiddenError("issue a pickup code for an order of another supplier")
		}
	case order.HandoffPurposeDelivery:
		if !issued.CustomerID().IsEqual(cmd.ActorID()) {
			return errs.NewActionIsForbiddenError("issue a delivery code for an order of another customer")
		}
	default:
		return errs.NewValueIsInvalidError("purpose")
	}
	return nil
}
