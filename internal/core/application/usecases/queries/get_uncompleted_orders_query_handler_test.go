package queries_test

import (
	"context"
	"testing"
	"time"

	"gascylinder/internal/adapters/out/postgres/orderrepo"
	"gascylinder/internal/core/application/usecases/queries"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetUncompletedOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUncompletedOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetUncompletedOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetUncompletedOrdersQueryForCustomer(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_ExcludesTerminalStatuses() {
	customerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	pending := suite.addPendingOrder(customerID, supplierID)

	rejected := suite.newPendingOrder(order.TypeOrder, customerID, supplierID)
	transitioned, err := rejected.Reject()
	suite.Require().NoError(err)
	suite.True(transitioned)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), rejected))

	delivered := suite.newDeliveredOrder(order.TypeOrder, customerID, supplierID, agentID)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), delivered))

	query, err := queries.NewGetUncompletedOrdersQueryForCustomer(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_FiltersByActor() {
	customerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	own := suite.addPendingOrder(customerID, supplierID)
	suite.addPendingOrder(kernel.NewUUID(), kernel.NewUUID())

	assigned := suite.newPendingOrder(order.TypeOrder, customerID, supplierID)
	suite.Require().NoError(assigned.Approve())
	suite.Require().NoError(assigned.Assign(agentID))
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), assigned))

	testCases := []struct {
		name      string
		query     func() (queries.GetUncompletedOrdersQuery, error)
		wantCount int
	}{
		{
			"Customer sees own orders",
			func() (queries.GetUncompletedOrdersQuery, error) {
				return queries.NewGetUncompletedOrdersQueryForCustomer(customerID)
			},
			2,
		},
		{
			"Supplier sees incoming orders",
			func() (queries.GetUncompletedOrdersQuery, error) {
				return queries.NewGetUncompletedOrdersQueryForSupplier(supplierID)
			},
			2,
		},
		{
			"Agent sees only assigned orders",
			func() (queries.GetUncompletedOrdersQuery, error) {
				return queries.NewGetUncompletedOrdersQueryForAgent(agentID)
			},
			1,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := tc.query()
			suite.Require().NoError(err)

			result, err := suite.handler.Handle(context.Background(), query)

			suite.Require().NoError(err)
			suite.Len(result, tc.wantCount)
		})
	}

	agentQuery, err := queries.NewGetUncompletedOrdersQueryForAgent(agentID)
	suite.Require().NoError(err)
	result, err := suite.handler.Handle(context.Background(), agentQuery)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(assigned.ID(), result[0].ID)
	suite.NotEqual(own.ID(), result[0].ID)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_MapsAllFields() {
	customerID := kernel.NewUUID()
	supplierID := kernel.NewUUID()

	o := suite.addPendingOrder(customerID, supplierID)

	query, err := queries.NewGetUncompletedOrdersQueryForCustomer(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal(o.ID(), row.ID)
	suite.Equal("order", row.Type)
	suite.Equal("Pending", row.Status)
	suite.Equal("CYL-0042", row.CylID)
	suite.Equal(customerID, row.CustomerID)
	suite.Equal(supplierID, row.SupplierID)
	suite.Nil(row.AgentID)
	suite.InDelta(2650, row.Total, 0.001)
	suite.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), row.DeliveryDate.UTC())
	suite.Equal("09:00-12:00", row.Timeslot)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_AssignedOrder_ExposesAgentID() {
	customerID := kernel.NewUUID()
	agentID := kernel.NewUUID()

	o := suite.newPendingOrder(order.TypeOrder, customerID, kernel.NewUUID())
	suite.Require().NoError(o.Approve())
	suite.Require().NoError(o.Assign(agentID))
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))

	query, err := queries.NewGetUncompletedOrdersQueryForCustomer(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Require().NotNil(result[0].AgentID)
	suite.Equal(agentID, *result[0].AgentID)
	suite.Equal("Assigned", result[0].Status)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_OrdersAreSortedByID() {
	customerID := kernel.NewUUID()

	for range 3 {
		suite.addPendingOrder(customerID, kernel.NewUUID())
	}

	query, err := queries.NewGetUncompletedOrdersQueryForCustomer(customerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	for i := range len(result) - 1 {
		suite.Less(result[i].ID.String(), result[i+1].ID.String())
	}
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetUncompletedOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via a NewGetUncompletedOrdersQueryFor constructor")
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	customerID := kernel.NewUUID()
	for range 50 {
		suite.addPendingOrder(customerID, kernel.NewUUID())
	}

	query, err := queries.NewGetUncompletedOrdersQueryForCustomer(customerID)
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) addPendingOrder(
	customerID kernel.UUID,
	supplierID kernel.UUID,
) *order.Order {
	o := suite.newPendingOrder(order.TypeOrder, customerID, supplierID)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) newPendingOrder(
	orderType order.Type,
	customerID kernel.UUID,
	supplierID kernel.UUID,
) *order.Order {
	snapshot, err := order.NewCylinderSnapshot("CYL-0042", "13kg", "ProGas", 2500)
	suite.Require().NoError(err)

	delivery, err := order.NewDelivery(
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "09:00-12:00", 4.2, 150)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		orderType, kernel.NewUUID(), customerID, supplierID, snapshot, delivery, 2650)
	suite.Require().NoError(err)
	return o
}

func (suite *GetUncompletedOrdersQueryHandlerTestSuite) newDeliveredOrder(
	orderType order.Type,
	customerID kernel.UUID,
	supplierID kernel.UUID,
	agentID kernel.UUID,
) *order.Order {
	o := suite.newPendingOrder(orderType, customerID, supplierID)
	suite.Require().NoError(o.Approve())
	if orderType == order.TypeRefill {
		suite.Require().NoError(o.MarkAtSupplier())
	}
	suite.Require().NoError(o.Assign(agentID))
	suite.Require().NoError(o.Accept(agentID))
	if orderType == order.TypeRefill {
		suite.Require().NoError(o.PickupAtSupplier(agentID))
	} else {
		suite.Require().NoError(o.PickupByScan(agentID, "CYL-0042"))
	}
	suite.Require().NoError(o.Deliver(agentID))
	return o
}

func TestGetUncompletedOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUncompletedOrdersQueryHandlerTestSuite))
}
