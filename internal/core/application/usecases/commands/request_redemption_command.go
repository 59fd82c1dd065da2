package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrRequestRedemptionCommandIsNotConstructed = errors.New(
	"request redemption command is not constructed")

// RequestRedemptionCommand asks for a reward against one of the supplier's
// active loyalty rules. Eligibility is computed once, at request time.
//
//nolint:recvcheck //using for validation
type RequestRedemptionCommand struct {
	redemptionID kernel.UUID
	customerID   kernel.UUID
	supplierID   kernel.UUID
	ruleID       kernel.UUID
	orderID      *kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestRedemptionCommand(redemptionID, customerID, supplierID,
	ruleID kernel.UUID, orderID *kernel.UUID) (RequestRedemptionCommand, error) {
	cmd := RequestRedemptionCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setRedemptionID(redemptionID),
		cmd.setCustomerID(customerID),
		cmd.setSupplierID(supplierID),
		cmd.setRuleID(ruleID),
		cmd.setOrderID(orderID),
	)
	if err != nil {
		return RequestRedemptionCommand{}, err
	}

	return cmd, nil
}

func (c RequestRedemptionCommand) RedemptionID() kernel.UUID {
	return c.redemptionID
}

func (c RequestRedemptionCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c RequestRedemptionCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

func (c RequestRedemptionCommand) RuleID() kernel.UUID {
	return c.ruleID
}

func (c RequestRedemptionCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c RequestRedemptionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRedemptionCommandIsNotConstructed)
}

func (c *RequestRedemptionCommand) setRedemptionID(redemptionID kernel.UUID) error {
	if err := redemptionID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("redemptionID", err)
	}

	c.redemptionID = redemptionID

	return nil
}

func (c *RequestRedemptionCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}

	c.customerID = customerID

	return nil
}

func (c *RequestRedemptionCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplierID", err)
	}

	c.supplierID = supplierID

	return nil
}

func (c *RequestRedemptionCommand) setRuleID(ruleID kernel.UUID) error {
	if err := ruleID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("ruleID", err)
	}

	c.ruleID = ruleID

	return nil
}

func (c *RequestRedemptionCommand) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}

	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}

	c.orderID = orderID

	return nil
}
