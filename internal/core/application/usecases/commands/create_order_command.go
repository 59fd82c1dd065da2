package commands

import (
	"errors"
	"time"

	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/pkg/errs"
	"gascylinder/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to place an order.
// The cylinder fields are a price snapshot; when cylID is present the
// handler additionally books that specific unit.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, supplierID,
//	    order.TypeOrder, "CYL-0042", "13kg", "ProGas", 2500,
//	    deliveryDate, "09:00-12:00", 4.2, 150, 2650)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	supplierID   kernel.UUID
	orderType    order.Type
	cylID        string
	size         string
	brand        string
	price        float64
	deliveryDate time.Time
	timeslot     string
	distanceKm   float64
	fee          float64
	total        float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates an order placement command. cylID may be
// empty, in which case no booking happens and only the price snapshot is
// stored.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	supplierID kernel.UUID,
	orderType order.Type,
	cylID string,
	size string,
	brand string,
	price float64,
	deliveryDate time.Time,
	timeslot string,
	distanceKm float64,
	fee float64,
	total float64,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setParticipants(orderID, customerID, supplierID),
		command.setOrderType(orderType),
		command.setSnapshot(cylID, size, brand, price),
		command.setDelivery(deliveryDate, timeslot, distanceKm, fee),
		command.setTotal(total),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// SupplierID returns the supplier the order targets.
func (c CreateOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// OrderType returns whether this is a full order or a refill.
func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// CylID returns the requested cylinder label, empty when none was requested.
func (c CreateOrderCommand) CylID() string {
	return c.cylID
}

// Size returns the snapshot size.
func (c CreateOrderCommand) Size() string {
	return c.size
}

// Brand returns the snapshot brand.
func (c CreateOrderCommand) Brand() string {
	return c.brand
}

// Price returns the snapshot price at placement time.
func (c CreateOrderCommand) Price() float64 {
	return c.price
}

// DeliveryDate returns the requested delivery date.
func (c CreateOrderCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// Timeslot returns the requested delivery window.
func (c CreateOrderCommand) Timeslot() string {
	return c.timeslot
}

// DistanceKm returns the delivery distance.
func (c CreateOrderCommand) DistanceKm() float64 {
	return c.distanceKm
}

// Fee returns the delivery fee.
func (c CreateOrderCommand) Fee() float64 {
	return c.fee
}

// Total returns the order total.
func (c CreateOrderCommand) Total() float64 {
	return c.total
}

func (c *CreateOrderCommand) setParticipants(orderID, customerID, supplierID kernel.UUID) error {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		supplierID.Validate(),
	); err != nil {
		return err
	}

	c.orderID = orderID
	c.customerID = customerID
	c.supplierID = supplierID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setSnapshot(cylID, size, brand string, price float64) error {
	if size == "" {
		return errs.NewValueIsRequiredError("size")
	}
	if brand == "" {
		return errs.NewValueIsRequiredError("brand")
	}
	if price < 0 {
		return errs.NewValueIsInvalidError("price")
	}

	c.cylID = cylID
	c.size = size
	c.brand = brand
	c.price = price
	return nil
}

func (c *CreateOrderCommand) setDelivery(deliveryDate time.Time, timeslot string, distanceKm, fee float64) error {
	if deliveryDate.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	if timeslot == "" {
		return errs.NewValueIsRequiredError("timeslot")
	}
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("distanceKm")
	}
	if fee < 0 {
		return errs.NewValueIsInvalidError("fee")
	}

	c.deliveryDate = deliveryDate
	c.timeslot = timeslot
	c.distanceKm = distanceKm
	c.fee = fee
	return nil
}

func (c *CreateOrderCommand) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidError("total")
	}

	c.total = total
	return nil
}
