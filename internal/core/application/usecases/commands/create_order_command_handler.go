package commands

import (
	"context"

	"gascylinder/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order placement. When the customer
// requested a specific cylinder, the handler books it through the registry's
// conditional write before persisting the order; a booking conflict aborts
// the whole transaction so no order references an unavailable unit.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle books the requested cylinder, if any, and persists the new order
// in Pending status. Booking conflicts surface as cylinder.ErrNotAvailable.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	snapshot, err := order.NewCylinderSnapshot(cmd.CylID(), cmd.Size(), cmd.Brand(), cmd.Price())
	if err != nil {
		return err
	}

	delivery, err := order.NewDelivery(cmd.DeliveryDate(), cmd.Timeslot(), cmd.DistanceKm(), cmd.Fee())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderType(), cmd.OrderID(), cmd.CustomerID(), cmd.SupplierID(),
		snapshot, delivery, cmd.Total())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if snapshot.HasCylinder() {
		if err = uow.CylinderRepository().Book(ctx, cmd.SupplierID(), cmd.CylID()); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
