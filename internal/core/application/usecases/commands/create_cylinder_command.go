package commands

import (
	"errors"

	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrCreateCylinderCommandIsNotConstructed = errors.New(
	"CreateCylinderCommand must be created via NewCreateCylinderCommand constructor",
)

// CreateCylinderCommand represents a supplier's request to register a new
// cylinder in inventory.
//
// Example:
//
//	cmd, err := NewCreateCylinderCommand(supplierID, "CYL-0042", "13kg", "ProGas",
//	    2500, 1100, cylinder.ConditionNew, "Main depot", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid cylinder data: %w", err)
//	}
//
//	handler := NewCreateCylinderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register cylinder: %w", err)
//	}
type CreateCylinderCommand struct { //nolint:recvcheck //using for validation
	supplierID   kernel.UUID
	cylID        string
	size         string
	brand        string
	price        float64
	refillPrice  float64
	condition    cylinder.Condition
	locationText string
	location     *kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateCylinderCommand creates a command to register a new cylinder.
// Validates identity, pricing and condition; the location is optional.
func NewCreateCylinderCommand(
	supplierID kernel.UUID,
	cylID string,
	size string,
	brand string,
	price float64,
	refillPrice float64,
	condition cylinder.Condition,
	locationText string,
	location *kernel.Location,
) (CreateCylinderCommand, error) {
	command := CreateCylinderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSupplierID(supplierID),
		command.setCylID(cylID),
		command.setSize(size),
		command.setBrand(brand),
		command.setPrice(price),
		command.setRefillPrice(refillPrice),
		command.setCondition(condition),
		command.setLocation(locationText, location),
	); err != nil {
		return CreateCylinderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCylinderCommand) Validate() error {
	return c.guard.Validate(ErrCreateCylinderCommandIsNotConstructed)
}

// SupplierID returns the registering supplier.
func (c CreateCylinderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// CylID returns the supplier-scoped cylinder label.
func (c CreateCylinderCommand) CylID() string {
	return c.cylID
}

// Size returns the cylinder size designation.
func (c CreateCylinderCommand) Size() string {
	return c.size
}

// Brand returns the cylinder brand.
func (c CreateCylinderCommand) Brand() string {
	return c.brand
}

// Price returns the full cylinder price.
func (c CreateCylinderCommand) Price() float64 {
	return c.price
}

// RefillPrice returns the refill price.
func (c CreateCylinderCommand) RefillPrice() float64 {
	return c.refillPrice
}

// Condition returns the declared physical condition.
func (c CreateCylinderCommand) Condition() cylinder.Condition {
	return c.condition
}

// LocationText returns the free-text location.
func (c CreateCylinderCommand) LocationText() string {
	return c.locationText
}

// Location returns the optional coordinates.
func (c CreateCylinderCommand) Location() *kernel.Location {
	return c.location
}

func (c *CreateCylinderCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *CreateCylinderCommand) setCylID(cylID string) error {
	if cylID == "" {
		return errs.NewValueIsRequiredError("cylID")
	}

	c.cylID = cylID
	return nil
}

func (c *CreateCylinderCommand) setSize(size string) error {
	if size == "" {
		return errs.NewValueIsRequiredError("size")
	}

	c.size = size
	return nil
}

func (c *CreateCylinderCommand) setBrand(brand string) error {
	if brand == "" {
		return errs.NewValueIsRequiredError("brand")
	}

	c.brand = brand
	return nil
}

func (c *CreateCylinderCommand) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("price")
	}

	c.price = price
	return nil
}

func (c *CreateCylinderCommand) setRefillPrice(refillPrice float64) error {
	if refillPrice < 0 {
		return errs.NewValueIsInvalidError("refillPrice")
	}

	c.refillPrice = refillPrice
	return nil
}

func (c *CreateCylinderCommand) setCondition(condition cylinder.Condition) error {
	if err := condition.Validate(); err != nil {
		return err
	}

	c.condition = condition
	return nil
}

func (c *CreateCylinderCommand) setLocation(locationText string, location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	c.locationText = locationText
	c.location = location
	return nil
}
