package commands_test

import (
	"testing"
	"time"

	"gascylinder/internal/core/application/usecases/commands"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/core/domain/services"
	"gascylinder/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssueHandoffOTPCommandHandler_Handle_PickupIssuedBySupplier(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	refill := newPendingOrder(t, order.TypeRefill, kernel.NewUUID(), supplierID)

	cmd, err := commands.NewIssueHandoffOTPCommand(supplierID, refill.ID(), order.HandoffPurposePickup)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, refill.ID()).Return(refill, nil).Once(),
		orderRepo.On("Update", mock.Anything, refill).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIssueHandoffOTPCommandHandler(factory, services.NewHandoffVerifier(20*time.Minute))
	issued, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, issued.Code, 6)
	require.Equal(t, 20, issued.ExpiresInMinutes)
	require.NotNil(t, refill.Handoff())
	require.Equal(t, order.HandoffPurposePickup, refill.Handoff().Purpose())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestIssueHandoffOTPCommandHandler_Handle_PickupByOtherActorForbidden(t *testing.T) {
	ctx := t.Context()
	refill := newPendingOrder(t, order.TypeRefill, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewIssueHandoffOTPCommand(kernel.NewUUID(), refill.ID(), order.HandoffPurposePickup)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, refill.ID()).Return(refill, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIssueHandoffOTPCommandHandler(factory, services.NewHandoffVerifier(0))
	_, err = h.Handle(ctx, cmd)

	var forbidden *errs.ActionIsForbiddenError
	require.ErrorAs(t, err, &forbidden)
	require.Nil(t, refill.Handoff())
}

func TestIssueHandoffOTPCommandHandler_Handle_DeliveryIssuedByCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	inTransit := newInTransitOrder(t, customerID, kernel.NewUUID(), kernel.NewUUID())

	cmd, err := commands.NewIssueHandoffOTPCommand(customerID, inTransit.ID(), order.HandoffPurposeDelivery)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, inTransit.ID()).Return(inTransit, nil).Once(),
		orderRepo.On("Update", mock.Anything, inTransit).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewIssueHandoffOTPCommandHandler(factory, services.NewHandoffVerifier(0))
	issued, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Code)
	require.Equal(t, order.HandoffPurposeDelivery, inTransit.Handoff().Purpose())
}

func TestIssueHandoffOTPCommandHandler_Handle_ReissueReplacesCode(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	refill := newPendingOrder(t, order.TypeRefill, kernel.NewUUID(), supplierID)

	cmd, err := commands.NewIssueHandoffOTPCommand(supplierID, refill.ID(), order.HandoffPurposePickup)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	orderRepo.On("Get", mock.Anything, refill.ID()).Return(refill, nil).Twice()
	orderRepo.On("Update", mock.Anything, refill).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewIssueHandoffOTPCommandHandler(factory, services.NewHandoffVerifier(0))
	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	firstHash := refill.Handoff().CodeHash()

	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotEqual(t, firstHash, refill.Handoff().CodeHash())
}
