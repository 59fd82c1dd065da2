package loyaltyrepo_test

import (
	"context"
	"testing"
	"time"

	"gascylinder/internal/adapters/out/postgres/loyaltyrepo"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/core/domain/model/loyalty"
	"gascylinder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type LoyaltyRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *loyaltyrepo.GormLoyaltyRepository
}

func (suite *LoyaltyRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(
		&loyaltyrepo.ProgramDTO{},
		&loyaltyrepo.TierDTO{},
		&loyaltyrepo.RuleDTO{},
		&loyaltyrepo.RedemptionDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = loyaltyrepo.NewGormLoyaltyRepository(db, &noopTracker{})
}

func (suite *LoyaltyRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *LoyaltyRepositoryTestSuite) SetupTest() {
	for _, table := range []string{"loyalty_tiers", "loyalty_rules", "loyalty_programs", "redemptions"} {
		err := suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		suite.Require().NoError(err)
	}
}

func (suite *LoyaltyRepositoryTestSuite) TestSaveProgramAndGet_RoundTripsDefinition() {
	supplierID := kernel.NewUUID()
	ruleID := kernel.NewUUID()
	program := suite.newProgram(supplierID, ruleID)

	err := suite.repo.SaveProgram(context.Background(), program)
	suite.Require().NoError(err)

	restored, err := suite.repo.GetProgram(context.Background(), supplierID)
	suite.Require().NoError(err)

	suite.Equal(supplierID, restored.SupplierID())
	suite.Equal(100, restored.PointsDivisor())

	suite.Require().Len(restored.Tiers(), 2)
	suite.Equal("Bronze", restored.Tiers()[0].Name())
	suite.Equal(0, restored.Tiers()[0].MinPoints())
	suite.Equal("Gold", restored.Tiers()[1].Name())
	suite.Equal(500, restored.Tiers()[1].MinPoints())

	suite.Require().Len(restored.Rules(), 1)
	rule := restored.Rules()[0]
	suite.Equal(ruleID, rule.ID())
	suite.Equal(loyalty.TriggerTypeNthRefill, rule.TriggerType())
	suite.Equal(5, rule.Nth())
	suite.Equal(loyalty.RewardTypeFreeDelivery, rule.RewardType())
	suite.True(rule.Active())
}

func (suite *LoyaltyRepositoryTestSuite) TestSaveProgram_ReplacesPreviousDefinitionWholesale() {
	supplierID := kernel.NewUUID()
	oldRuleID := kernel.NewUUID()
	err := suite.repo.SaveProgram(context.Background(), suite.newProgram(supplierID, oldRuleID))
	suite.Require().NoError(err)

	newRuleID := kernel.NewUUID()
	newRule, err := loyalty.NewRule(
		newRuleID, loyalty.TriggerTypeNthOrder, 3, loyalty.RewardTypePercentOff, 10, true)
	suite.Require().NoError(err)
	tier, err := loyalty.NewTier("Silver", 200)
	suite.Require().NoError(err)
	replacement, err := loyalty.NewProgram(
		supplierID, 50, []loyalty.Tier{tier}, []loyalty.Rule{newRule})
	suite.Require().NoError(err)

	err = suite.repo.SaveProgram(context.Background(), replacement)
	suite.Require().NoError(err)

	restored, err := suite.repo.GetProgram(context.Background(), supplierID)
	suite.Require().NoError(err)

	suite.Equal(50, restored.PointsDivisor())
	suite.Require().Len(restored.Tiers(), 1)
	suite.Equal("Silver", restored.Tiers()[0].Name())
	suite.Require().Len(restored.Rules(), 1)
	suite.Equal(newRuleID, restored.Rules()[0].ID())

	_, err = restored.ActiveRule(oldRuleID)
	suite.Require().ErrorIs(err, loyalty.ErrRuleNotFound)
}

func (suite *LoyaltyRepositoryTestSuite) TestGetProgram_UnknownSupplier_ReturnsNotFound() {
	_, err := suite.repo.GetProgram(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *LoyaltyRepositoryTestSuite) TestAddRedemptionAndGet_RoundTripsVerdict() {
	supplierID := kernel.NewUUID()
	requestedAt := time.Now().UTC()
	redemption, err := loyalty.NewRedemption(
		kernel.NewUUID(), supplierID, kernel.NewUUID(), nil, kernel.NewUUID(), true, requestedAt)
	suite.Require().NoError(err)

	err = suite.repo.AddRedemption(context.Background(), redemption)
	suite.Require().NoError(err)

	restored, err := suite.repo.GetRedemption(context.Background(), redemption.ID())
	suite.Require().NoError(err)

	suite.Equal(redemption.ID(), restored.ID())
	suite.Equal(supplierID, restored.SupplierID())
	suite.Nil(restored.OrderID())
	suite.True(restored.Eligible())
	suite.Equal(loyalty.RedemptionPending, restored.Status())
	suite.WithinDuration(requestedAt, restored.RequestedAt(), time.Second)
	suite.Nil(restored.ProcessedBy())
	suite.Nil(restored.ProcessedAt())
}

func (suite *LoyaltyRepositoryTestSuite) TestUpdateRedemption_PersistsProcessingDecision() {
	supplierID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	redemption, err := loyalty.NewRedemption(
		kernel.NewUUID(), supplierID, kernel.NewUUID(), &orderID, kernel.NewUUID(), true, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.AddRedemption(context.Background(), redemption))

	processedAt := time.Now().UTC()
	suite.Require().NoError(redemption.Approve(supplierID, processedAt))

	err = suite.repo.UpdateRedemption(context.Background(), redemption)
	suite.Require().NoError(err)

	restored, err := suite.repo.GetRedemption(context.Background(), redemption.ID())
	suite.Require().NoError(err)

	suite.Equal(loyalty.RedemptionApproved, restored.Status())
	suite.Require().NotNil(restored.OrderID())
	suite.Equal(orderID, *restored.OrderID())
	suite.Require().NotNil(restored.ProcessedBy())
	suite.Equal(supplierID, *restored.ProcessedBy())
	suite.Require().NotNil(restored.ProcessedAt())
	suite.WithinDuration(processedAt, *restored.ProcessedAt(), time.Second)
}

func (suite *LoyaltyRepositoryTestSuite) TestGetRedemption_Unknown_ReturnsNotFound() {
	_, err := suite.repo.GetRedemption(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *LoyaltyRepositoryTestSuite) newProgram(
	supplierID kernel.UUID,
	ruleID kernel.UUID,
) *loyalty.Program {
	bronze, err := loyalty.NewTier("Bronze", 0)
	suite.Require().NoError(err)
	gold, err := loyalty.NewTier("Gold", 500)
	suite.Require().NoError(err)

	rule, err := loyalty.NewRule(
		ruleID, loyalty.TriggerTypeNthRefill, 5, loyalty.RewardTypeFreeDelivery, 0, true)
	suite.Require().NoError(err)

	program, err := loyalty.NewProgram(
		supplierID, 100, []loyalty.Tier{bronze, gold}, []loyalty.Rule{rule})
	suite.Require().NoError(err)
	return program
}

func TestLoyaltyRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyRepositoryTestSuite))
}

// noopTracker implements the aggregate tracker for repository tests.
type noopTracker struct{}

func (t *noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}
