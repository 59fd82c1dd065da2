package cylinderrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gascylinder/internal/adapters/out/postgres/cylinderrepo"
	"gascylinder/internal/core/domain/model/cylinder"
	"gascylinder/internal/core/domain/model/kernel"
	"gascylinder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CylinderRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *cylinderrepo.GormCylinderRepository
}

func (suite *CylinderRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&cylinderrepo.CylinderDTO{})
	suite.Require().NoError(err)

	suite.repo = cylinderrepo.NewGormCylinderRepository(db, &noopTracker{})
}

func (suite *CylinderRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *CylinderRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE cylinders").Error
	suite.Require().NoError(err)
}

func (suite *CylinderRepositoryTestSuite) TestAddAndGet_RoundTripsAggregate() {
	supplierID := kernel.NewUUID()
	location, err := kernel.NewLocation(-1.2921, 36.8219)
	suite.Require().NoError(err)

	cyl, err := cylinder.NewCylinder(
		supplierID, "CYL-0042", "13kg", "ProGas", 2500, 1100,
		cylinder.ConditionNew, "Main depot", &location)
	suite.Require().NoError(err)

	err = suite.repo.Add(context.Background(), cyl)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)

	suite.Equal(supplierID, restored.SupplierID())
	suite.Equal("CYL-0042", restored.CylID())
	suite.Equal("13kg", restored.Size())
	suite.Equal("ProGas", restored.Brand())
	suite.InDelta(2500, restored.Price(), 0.001)
	suite.InDelta(1100, restored.RefillPrice(), 0.001)
	suite.Equal(cylinder.ConditionNew, restored.Condition())
	suite.Equal(cylinder.StatusAvailable, restored.Status())
	suite.Equal(cylinder.OwnerSupplier, restored.Owner())
	suite.Equal("Main depot", restored.LocationText())
	suite.Require().NotNil(restored.Location())
	suite.True(location.IsEqual(*restored.Location()))
}

func (suite *CylinderRepositoryTestSuite) TestAdd_DuplicateLabelSameSupplier_ReturnsAlreadyExists() {
	supplierID := kernel.NewUUID()
	first := suite.newCylinder(supplierID, "CYL-0042")
	second := suite.newCylinder(supplierID, "CYL-0042")

	err := suite.repo.Add(context.Background(), first)
	suite.Require().NoError(err)

	err = suite.repo.Add(context.Background(), second)
	suite.Require().Error(err)

	var alreadyExists *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &alreadyExists)
}

func (suite *CylinderRepositoryTestSuite) TestAdd_SameLabelDifferentSuppliers_BothSucceed() {
	err := suite.repo.Add(context.Background(), suite.newCylinder(kernel.NewUUID(), "CYL-0042"))
	suite.Require().NoError(err)

	err = suite.repo.Add(context.Background(), suite.newCylinder(kernel.NewUUID(), "CYL-0042"))
	suite.Require().NoError(err)
}

func (suite *CylinderRepositoryTestSuite) TestGet_UnknownLabel_ReturnsNotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID(), "CYL-9999")

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *CylinderRepositoryTestSuite) TestUpdate_PersistsStatusAndOwner() {
	supplierID := kernel.NewUUID()
	cyl := suite.newCylinder(supplierID, "CYL-0042")
	err := suite.repo.Add(context.Background(), cyl)
	suite.Require().NoError(err)

	err = cyl.ApplyProjection(cylinder.StatusDelivered, cylinder.OwnerCustomer)
	suite.Require().NoError(err)
	err = suite.repo.Update(context.Background(), cyl)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)
	suite.Equal(cylinder.StatusDelivered, restored.Status())
	suite.Equal(cylinder.OwnerCustomer, restored.Owner())
}

func (suite *CylinderRepositoryTestSuite) TestUpdate_UnknownCylinder_ReturnsRecordNotFound() {
	cyl := suite.newCylinder(kernel.NewUUID(), "CYL-0042")

	err := suite.repo.Update(context.Background(), cyl)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CylinderRepositoryTestSuite) TestGetAllBySupplier_ReturnsOnlyOwnCylindersOrderedByLabel() {
	supplierID := kernel.NewUUID()
	otherSupplierID := kernel.NewUUID()

	for _, cylID := range []string{"CYL-0003", "CYL-0001", "CYL-0002"} {
		err := suite.repo.Add(context.Background(), suite.newCylinder(supplierID, cylID))
		suite.Require().NoError(err)
	}
	err := suite.repo.Add(context.Background(), suite.newCylinder(otherSupplierID, "CYL-0001"))
	suite.Require().NoError(err)

	cylinders, err := suite.repo.GetAllBySupplier(context.Background(), supplierID)
	suite.Require().NoError(err)

	suite.Require().Len(cylinders, 3)
	suite.Equal("CYL-0001", cylinders[0].CylID())
	suite.Equal("CYL-0002", cylinders[1].CylID())
	suite.Equal("CYL-0003", cylinders[2].CylID())
}

func (suite *CylinderRepositoryTestSuite) TestBook_AvailableCylinder_MovesToBooked() {
	supplierID := kernel.NewUUID()
	err := suite.repo.Add(context.Background(), suite.newCylinder(supplierID, "CYL-0042"))
	suite.Require().NoError(err)

	err = suite.repo.Book(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)
	suite.Equal(cylinder.StatusBooked, restored.Status())
}

func (suite *CylinderRepositoryTestSuite) TestBook_AlreadyBooked_ReturnsNotAvailable() {
	supplierID := kernel.NewUUID()
	err := suite.repo.Add(context.Background(), suite.newCylinder(supplierID, "CYL-0042"))
	suite.Require().NoError(err)

	err = suite.repo.Book(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)

	err = suite.repo.Book(context.Background(), supplierID, "CYL-0042")
	suite.Require().ErrorIs(err, cylinder.ErrNotAvailable)
}

func (suite *CylinderRepositoryTestSuite) TestBook_UnknownCylinder_ReturnsNotFound() {
	err := suite.repo.Book(context.Background(), kernel.NewUUID(), "CYL-9999")

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *CylinderRepositoryTestSuite) TestBook_ConcurrentAttempts_ExactlyOneWins() {
	supplierID := kernel.NewUUID()
	err := suite.repo.Add(context.Background(), suite.newCylinder(supplierID, "CYL-0042"))
	suite.Require().NoError(err)

	const attempts = 16
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.repo.Book(context.Background(), supplierID, "CYL-0042")
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	conflicts := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			suite.Require().ErrorIs(err, cylinder.ErrNotAvailable)
			conflicts++
		}
	}

	suite.Equal(1, successes)
	suite.Equal(attempts-1, conflicts)

	restored, err := suite.repo.Get(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)
	suite.Equal(cylinder.StatusBooked, restored.Status())
}

func (suite *CylinderRepositoryTestSuite) TestRelease_BookedCylinder_ReturnsToAvailable() {
	supplierID := kernel.NewUUID()
	err := suite.repo.Add(context.Background(), suite.newCylinder(supplierID, "CYL-0042"))
	suite.Require().NoError(err)
	err = suite.repo.Book(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)

	err = suite.repo.Release(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)
	suite.Equal(cylinder.StatusAvailable, restored.Status())
}

func (suite *CylinderRepositoryTestSuite) TestRelease_NotBooked_IsNoOp() {
	supplierID := kernel.NewUUID()
	cyl := suite.newCylinder(supplierID, "CYL-0042")
	err := suite.repo.Add(context.Background(), cyl)
	suite.Require().NoError(err)

	err = cyl.ApplyProjection(cylinder.StatusInTransit, cylinder.OwnerAgent)
	suite.Require().NoError(err)
	err = suite.repo.Update(context.Background(), cyl)
	suite.Require().NoError(err)

	err = suite.repo.Release(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(context.Background(), supplierID, "CYL-0042")
	suite.Require().NoError(err)
	suite.Equal(cylinder.StatusInTransit, restored.Status())
}

func (suite *CylinderRepositoryTestSuite) newCylinder(supplierID kernel.UUID, cylID string) *cylinder.Cylinder {
	cyl, err := cylinder.NewCylinder(
		supplierID, cylID, "13kg", "ProGas", 2500, 1100,
		cylinder.ConditionNew, fmt.Sprintf("Depot %s", cylID), nil)
	suite.Require().NoError(err)
	return cyl
}

func TestCylinderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CylinderRepositoryTestSuite))
}

// noopTracker implements the aggregate tracker for repository tests.
type noopTracker struct{}

func (t *noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}
