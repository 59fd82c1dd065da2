package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrUpdateCylinderCommandIsNotConstructed = errors.New(
	"UpdateCylinderCommand must be created via NewUpdateCylinderCommand constructor",
)

// UpdateCylinderCommand represents a supplier edit of an existing cylinder.
// All fields except the identity pair are optional; nil means "keep the
// current value". The status/owner pair supports corrections of Lost and
// Damaged units and must be set together.
type UpdateCylinderCommand struct { //nolint:recvcheck //using for validation
	supplierID   kernel.UUID
	cylID        string
	size         *string
	brand        *string
	price        *float64
	refillPrice  *float64
	condition    *cylinder.Condition
	locationText *string
	location     *kernel.Location
	status       *cylinder.Status
	owner        *cylinder.Owner

	guard guard.ConstructorGuard
}

// NewUpdateCylinderCommand creates a cylinder edit command. At least one
// optional field must be provided.
func NewUpdateCylinderCommand(
	supplierID kernel.UUID,
	cylID string,
	size *string,
	brand *string,
	price *float64,
	refillPrice *float64,
	condition *cylinder.Condition,
	locationText *string,
	location *kernel.Location,
	status *cylinder.Status,
	owner *cylinder.Owner,
) (UpdateCylinderCommand, error) {
	command := UpdateCylinderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIdentity(supplierID, cylID),
		command.setFields(size, brand, price, refillPrice, condition, locationText, location),
		command.setCorrection(status, owner),
	); err != nil {
		return UpdateCylinderCommand{}, err
	}

	if !command.hasChanges() {
		return UpdateCylinderCommand{}, errs.NewValueIsRequiredError("at least one field to update")
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCylinderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCylinderCommandIsNotConstructed)
}

// SupplierID returns the editing supplier.
func (c UpdateCylinderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// CylID returns the cylinder label being edited.
func (c UpdateCylinderCommand) CylID() string {
	return c.cylID
}

// Size returns the new size, or nil to keep the current one.
func (c UpdateCylinderCommand) Size() *string {
	return c.size
}

// Brand returns the new brand, or nil to keep the current one.
func (c UpdateCylinderCommand) Brand() *string {
	return c.brand
}

// Price returns the new price, or nil to keep the current one.
func (c UpdateCylinderCommand) Price() *float64 {
	return c.price
}

// RefillPrice returns the new refill price, or nil to keep the current one.
func (c UpdateCylinderCommand) RefillPrice() *float64 {
	return c.refillPrice
}

// Condition returns the new condition, or nil to keep the current one.
func (c UpdateCylinderCommand) Condition() *cylinder.Condition {
	return c.condition
}

// LocationText returns the new free-text location, or nil to keep the current one.
func (c UpdateCylinderCommand) LocationText() *string {
	return c.locationText
}

// Location returns the new coordinates, or nil to keep the current ones.
func (c UpdateCylinderCommand) Location() *kernel.Location {
	return c.location
}

// Status returns the corrected status, or nil when no correction was requested.
func (c UpdateCylinderCommand) Status() *cylinder.Status {
	return c.status
}

// Owner returns the corrected owner, or nil when no correction was requested.
func (c UpdateCylinderCommand) Owner() *cylinder.Owner {
	return c.owner
}

// RefillPriceOnly reports whether the refill price is the only requested
// change. That edit stays allowed while the cylinder is Delivered.
func (c UpdateCylinderCommand) RefillPriceOnly() bool {
	return c.refillPrice != nil &&
		c.size == nil && c.brand == nil && c.price == nil &&
		c.condition == nil && c.locationText == nil && c.location == nil &&
		c.status == nil
}

func (c *UpdateCylinderCommand) setIdentity(supplierID kernel.UUID, cylID string) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}
	if cylID == "" {
		return errs.NewValueIsRequiredError("cylID")
	}

	c.supplierID = supplierID
	c.cylID = cylID
	return nil
}

func (c *UpdateCylinderCommand) setFields(
	size *string,
	brand *string,
	price *float64,
	refillPrice *float64,
	condition *cylinder.Condition,
	locationText *string,
	location *kernel.Location,
) error {
	if size != nil && *size == "" {
		return errs.NewValueIsRequiredError("size")
	}
	if brand != nil && *brand == "" {
		return errs.NewValueIsRequiredError("brand")
	}
	if price != nil && *price < 0 {
		return errs.NewValueIsInvalidError("price")
	}
	if refillPrice != nil && *refillPrice < 0 {
		return errs.NewValueIsInvalidError("refillPrice")
	}
	if condition != nil {
		if err := condition.Validate(); err != nil {
			return err
		}
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	c.size = size
	c.brand = brand
	c.price = price
	c.refillPrice = refillPrice
	c.condition = condition
	c.locationText = locationText
	c.location = location
	return nil
}

func (c *UpdateCylinderCommand) setCorrection(status *cylinder.Status, owner *cylinder.Owner) error {
	if (status == nil) != (owner == nil) {
		return errs.NewValueIsRequiredError("status and owner must be corrected together")
	}
	if status == nil {
		return nil
	}
	if err := errors.Join(status.Validate(), owner.Validate()); err != nil {
		return err
	}

	c.status = status
	c.owner = owner
	return nil
}

func (c *UpdateCylinderCommand) hasChanges() bool {
	return c.size != nil || c.brand != nil || c.price != nil || c.refillPrice != nil ||
		c.condition != nil || c.locationText != nil || c.location != nil || c.status != nil
}
