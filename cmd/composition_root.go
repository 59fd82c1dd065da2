package cmd

import (
	"time"

	adapterhttp "gascylinder/internal/adapters/in/http"
	"gascylinder/internal/adapters/out/postgres"
	"gascylinder/internal/core/application/usecases/commands"
	"gascylinder/internal/core/application/usecases/queries"
	"gascylinder/internal/core/domain/services"
	"gascylinder/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	verifier   services.HandoffVerifier
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		verifier:   services.NewHandoffVerifier(time.Duration(config.OTPTTLMinutes) * time.Minute),
		logger:     logger,
	}
}

// CreateHTTPHandlers wires every command and query handler the HTTP server
// dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() adapterhttp.Handlers {
	return adapterhttp.Handlers{
		CreateCylinder:      commands.NewCreateCylinderCommandHandler(c.cylinderUoWFactory()),
		UpdateCylinder:      commands.NewUpdateCylinderCommandHandler(c.cylinderUoWFactory()),
		ReportCylinderLost:  commands.NewReportCylinderLostCommandHandler(c.crossUoWFactory()),
		CreateOrder:         commands.NewCreateOrderCommandHandler(c.crossUoWFactory()),
		ReviewOrder:         commands.NewReviewOrderCommandHandler(c.crossUoWFactory()),
		MarkOrderAtSupplier: commands.NewMarkOrderAtSupplierCommandHandler(c.crossUoWFactory(), c.logger),
		AssignAgent:         commands.NewAssignAgentCommandHandler(c.orderUoWFactory()),
		RespondAssignment:   commands.NewRespondAssignmentCommandHandler(c.orderUoWFactory()),
		IssueHandoffOTP:     commands.NewIssueHandoffOTPCommandHandler(c.orderUoWFactory(), c.verifier),
		PickupOrder:         commands.NewPickupOrderCommandHandler(c.crossUoWFactory(), c.logger),
		PickupAtSupplier:    commands.NewPickupAtSupplierCommandHandler(c.crossUoWFactory(), c.verifier, c.logger),
		DeliverOrder:        commands.NewDeliverOrderCommandHandler(c.crossUoWFactory(), c.verifier, c.logger),
		ResyncCylinder:      commands.NewResyncCylinderCommandHandler(c.crossUoWFactory(), c.logger),
		SaveLoyaltyProgram:  commands.NewSaveLoyaltyProgramCommandHandler(c.loyaltyUoWFactory()),
		RequestRedemption:   commands.NewRequestRedemptionCommandHandler(c.loyaltyUoWFactory()),
		ProcessRedemption:   commands.NewProcessRedemptionCommandHandler(c.loyaltyUoWFactory()),

		SupplierCylinders: queries.NewGetSupplierCylindersQueryHandler(c.gormDB),
		UncompletedOrders: queries.NewGetUncompletedOrdersQueryHandler(c.gormDB),
		Redemptions:       queries.NewGetRedemptionsQueryHandler(c.gormDB),
	}
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager(reconciliationSchedule string) *jobs.JobManager {
	reconcileHandler := commands.NewReconcileCylindersCommandHandler(c.crossUoWFactory(), c.logger)
	return jobs.NewJobManager(reconcileHandler, reconciliationSchedule, c.logger)
}

func (c *CompositionRoot) cylinderUoWFactory() commands.CylinderUoWFactory {
	return FuncCylinderUoWFactory(func() commands.CylinderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) loyaltyUoWFactory() commands.LoyaltyUoWFactory {
	return FuncLoyaltyUoWFactory(func() commands.LoyaltyUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCylinderUoWFactory func() commands.CylinderUoW

func (f FuncCylinderUoWFactory) Create() commands.CylinderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLoyaltyUoWFactory func() commands.LoyaltyUoW

func (f FuncLoyaltyUoWFactory) Create() commands.LoyaltyUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
