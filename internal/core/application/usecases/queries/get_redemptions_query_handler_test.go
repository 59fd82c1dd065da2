package queries_test

import (
	"context"
	"testing"
	"time"

	"gascylinder/internal/adapters/out/postgres/loyaltyrepo"
	"gascylinder/internal/core/application/usecases/queries"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetRedemptionsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetRedemptionsQueryHandler
	repo      *loyaltyrepo.GormLoyaltyRepository
}

func (suite *GetRedemptionsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&loyaltyrepo.RedemptionDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetRedemptionsQueryHandler(db)
	suite.repo = loyaltyrepo.NewGormLoyaltyRepository(db, &mockAggregateTracker{})
}

func (suite *GetRedemptionsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetRedemptionsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE redemptions").Error
	suite.Require().NoError(err)
}

func (suite *GetRedemptionsQueryHandlerTestSuite) TestHandle_NoRedemptions_ReturnsEmptySlice() {
	query, err := queries.NewGetRedemptionsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetRedemptionsQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnRedemptionsNewestFirst() {
	supplierID := kernel.NewUUID()
	otherSupplierID := kernel.NewUUID()

	older := suite.addRedemption(supplierID, time.Now().Add(-2*time.Hour))
	newer := suite.addRedemption(supplierID, time.Now().Add(-time.Hour))
	suite.addRedemption(otherSupplierID, time.Now())

	query, err := queries.NewGetRedemptionsQuery(supplierID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
}

func (suite *GetRedemptionsQueryHandlerTestSuite) TestHandle_PendingRedemption_MapsAllFields() {
	supplierID := kernel.NewUUID()
	requestedAt := time.Now().UTC()

	redemption := suite.addRedemption(supplierID, requestedAt)

	query, err := queries.NewGetRedemptionsQuery(supplierID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal(redemption.ID(), row.ID)
	suite.Equal(redemption.CustomerID(), row.CustomerID)
	suite.Nil(row.OrderID)
	suite.Equal(redemption.RuleID(), row.RuleID)
	suite.True(row.Eligible)
	suite.Equal("pending", row.Status)
	suite.WithinDuration(requestedAt, row.RequestedAt, time.Second)
	suite.Nil(row.ProcessedBy)
	suite.Nil(row.ProcessedAt)
}

func (suite *GetRedemptionsQueryHandlerTestSuite) TestHandle_ProcessedRedemption_ExposesVerdict() {
	supplierID := kernel.NewUUID()
	processedBy := kernel.NewUUID()
	processedAt := time.Now().UTC()

	redemption := suite.addRedemption(supplierID, time.Now().Add(-time.Hour))
	err := redemption.Approve(processedBy, processedAt)
	suite.Require().NoError(err)
	err = suite.repo.UpdateRedemption(context.Background(), redemption)
	suite.Require().NoError(err)

	query, err := queries.NewGetRedemptionsQuery(supplierID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal("approved", row.Status)
	suite.Require().NotNil(row.ProcessedBy)
	suite.Equal(processedBy, *row.ProcessedBy)
	suite.Require().NotNil(row.ProcessedAt)
	suite.WithinDuration(processedAt, *row.ProcessedAt, time.Second)
}

func (suite *GetRedemptionsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetRedemptionsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetRedemptionsQuery constructor")
}

func (suite *GetRedemptionsQueryHandlerTestSuite) addRedemption(
	supplierID kernel.UUID,
	requestedAt time.Time,
) *loyalty.Redemption {
	redemption, err := loyalty.NewRedemption(
		kernel.NewUUID(), supplierID, kernel.NewUUID(), nil,
		kernel.NewUUID(), true, requestedAt)
	suite.Require().NoError(err)

	err = suite.repo.AddRedemption(context.Background(), redemption)
	suite.Require().NoError(err)
	return redemption
}

func TestGetRedemptionsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetRedemptionsQueryHandlerTestSuite))
}
