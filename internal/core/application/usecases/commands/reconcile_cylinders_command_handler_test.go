package commands_test

import (
	"errors"
	"testing"

	"gascylinder/internal/core/application/usecases/commands"
	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReconcileCylindersCommandHandler_Handle_ProjectsEveryInFlightOrder(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	inTransit := newInTransitOrder(t, kernel.NewUUID(), supplierID, agentID)
	// stale cylinder, as after a projection lost at the pickup boundary
	cyl := newTestCylinder(t, supplierID)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInStatuses", mock.Anything,
			[]order.Status{order.AtSupplier, order.InTransit, order.Delivered}).
			Return([]*order.Order{inTransit}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		cylinderRepo.On("Get", mock.Anything, supplierID, testCylID).Return(cyl, nil).Once(),
		cylinderRepo.On("Update", mock.Anything, cyl).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Twice(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewReconcileCylindersCommandHandler(factory, zap.NewNop())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileCylindersCommand()))
	require.Equal(t, cylinder.StatusInTransit, cyl.Status())
	require.Equal(t, cylinder.OwnerAgent, cyl.Owner())
	orderRepo.AssertExpectations(t)
	cylinderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReconcileCylindersCommandHandler_Handle_RepairsStuckDelivery(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	delivered := newDeliveredOrder(t, kernel.NewUUID(), supplierID, agentID)
	// cylinder never left the agent, as after a projection lost at delivery
	cyl := restoreCylinder(t, supplierID, cylinder.StatusInTransit, cylinder.OwnerAgent)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInStatuses", mock.Anything, mock.Anything).
			Return([]*order.Order{delivered}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		cylinderRepo.On("Get", mock.Anything, supplierID, testCylID).Return(cyl, nil).Once(),
		cylinderRepo.On("Update", mock.Anything, cyl).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Twice(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewReconcileCylindersCommandHandler(factory, zap.NewNop())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileCylindersCommand()))
	require.Equal(t, cylinder.StatusDelivered, cyl.Status())
	require.Equal(t, cylinder.OwnerCustomer, cyl.Owner())
	cylinderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcileCylindersCommandHandler_Handle_LeavesLostCylinderAlone(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	delivered := newDeliveredOrder(t, kernel.NewUUID(), supplierID, agentID)
	cyl := restoreCylinder(t, supplierID, cylinder.StatusDelivered, cylinder.OwnerCustomer)
	require.NoError(t, cyl.ReportLost())

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInStatuses", mock.Anything, mock.Anything).
			Return([]*order.Order{delivered}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		cylinderRepo.On("Get", mock.Anything, supplierID, testCylID).Return(cyl, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Twice(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewReconcileCylindersCommandHandler(factory, zap.NewNop())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileCylindersCommand()))
	require.Equal(t, cylinder.StatusLost, cyl.Status(),
		"a completed order must not overwrite a lost report")
	cylinderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcileCylindersCommandHandler_Handle_PerOrderFailureDoesNotStopSweep(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	agentID := kernel.NewUUID()
	broken := newInTransitOrder(t, kernel.NewUUID(), supplierID, agentID)
	healthy := newInTransitOrder(t, kernel.NewUUID(), supplierID, agentID)
	cyl := newTestCylinder(t, supplierID)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CylinderRepository").Return(cylinderRepo)
	orderRepo.On("GetAllInStatuses", mock.Anything, mock.Anything).
		Return([]*order.Order{broken, healthy}, nil).Once()
	cylinderRepo.On("Get", mock.Anything, supplierID, testCylID).
		Return(nil, errors.New("registry unavailable")).Once()
	cylinderRepo.On("Get", mock.Anything, supplierID, testCylID).Return(cyl, nil).Once()
	cylinderRepo.On("Update", mock.Anything, cyl).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewReconcileCylindersCommandHandler(factory, zap.NewNop())
	require.NoError(t, h.Handle(ctx, commands.NewReconcileCylindersCommand()))
	require.Equal(t, cylinder.StatusInTransit, cyl.Status())
	cylinderRepo.AssertExpectations(t)
}

func TestReconcileCylindersCommandHandler_Handle_SweepQueryErrorSurfaces(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("GetAllInStatuses", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileCylindersCommandHandler(factory, zap.NewNop())
	err := h.Handle(ctx, commands.NewReconcileCylindersCommand())
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection reset")
}

func TestReconcileCylindersCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	h := commands.NewReconcileCylindersCommandHandler(new(MockUoWFactory), zap.NewNop())

	err := h.Handle(t.Context(), commands.ReconcileCylindersCommand{})

	require.ErrorIs(t, err, commands.ErrReconcileCylindersCommandIsNotConstructed)
}
