package commands_test

import (
	"context"

	"gascylinder/internal/core/application/usecases/commands"
	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"
	"gascylinder/internal/core/domain/model/order"
	"gascylinder/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCylinderRepository struct{ mock.Mock }

func (m *MockCylinderRepository) Add(ctx context.Context, aggregate *cylinder.Cylinder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCylinderRepository) Update(ctx context.Context, aggregate *cylinder.Cylinder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCylinderRepository) Get(ctx context.Context,
	supplierID kernel.UUID, cylID string) (*cylinder.Cylinder, error) {
	args := m.Called(ctx, supplierID, cylID)
	if c, ok := args.Get(0).(*cylinder.Cylinder); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCylinderRepository) GetAllBySupplier(ctx context.Context,
	supplierID kernel.UUID) ([]*cylinder.Cylinder, error) {
	args := m.Called(ctx, supplierID)
	if cc, ok := args.Get(0).([]*cylinder.Cylinder); ok {
		return cc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCylinderRepository) Book(ctx context.Context, supplierID kernel.UUID, cylID string) error {
	args := m.Called(ctx, supplierID, cylID)
	return args.Error(0)
}

func (m *MockCylinderRepository) Release(ctx context.Context, supplierID kernel.UUID, cylID string) error {
	args := m.Called(ctx, supplierID, cylID)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatuses(ctx context.Context,
	statuses ...order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, statuses)
	if oo, ok := args.Get(0).([]*order.Order); ok {
		return oo, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CountDelivered(ctx context.Context,
	supplierID, customerID kernel.UUID, refillOnly bool) (int, error) {
	args := m.Called(ctx, supplierID, customerID, refillOnly)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) HasDeliveredCylinder(ctx context.Context,
	supplierID, customerID kernel.UUID, cylID string) (bool, error) {
	args := m.Called(ctx, supplierID, customerID, cylID)
	return args.Bool(0), args.Error(1)
}

type MockLoyaltyRepository struct{ mock.Mock }

func (m *MockLoyaltyRepository) SaveProgram(ctx context.Context, program *loyalty.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockLoyaltyRepository) GetProgram(ctx context.Context,
	supplierID kernel.UUID) (*loyalty.Program, error) {
	args := m.Called(ctx, supplierID)
	if p, ok := args.Get(0).(*loyalty.Program); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoyaltyRepository) AddRedemption(ctx context.Context, redemption *loyalty.Redemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

func (m *MockLoyaltyRepository) UpdateRedemption(ctx context.Context, redemption *loyalty.Redemption) error {
	args := m.Called(ctx, redemption)
	return args.Error(0)
}

func (m *MockLoyaltyRepository) GetRedemption(ctx context.Context,
	id kernel.UUID) (*loyalty.Redemption, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*loyalty.Redemption); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUoW satisfies every unit of work flavor the handlers accept.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CylinderRepository() ports.CylinderRepository {
	args := m.Called()
	return args.Get(0).(ports.CylinderRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) LoyaltyRepository() ports.LoyaltyRepository {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCylinderUoWFactory struct{ mock.Mock }

func (m *MockCylinderUoWFactory) Create() commands.CylinderUoW {
	args := m.Called()
	return args.Get(0).(commands.CylinderUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLoyaltyUoWFactory struct{ mock.Mock }

func (m *MockLoyaltyUoWFactory) Create() commands.LoyaltyUoW {
	args := m.Called()
	return args.Get(0).(commands.LoyaltyUoW)
}
