package jobs

import (
	"context"

	"go.uber.org/zap"

	"gascylinder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CylinderReconciliationJob periodically sweeps the in-flight orders and
// re-applies the ownership projection to their cylinders. Lost projections
// heal on the next run without operator intervention.
type CylinderReconciliationJob struct {
	handler  commands.ReconcileCylindersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewCylinderReconciliationJob creates the reconciliation job. The schedule
// is a six-field cron expression with a seconds column.
func NewCylinderReconciliationJob(
	handler commands.ReconcileCylindersCommandHandler,
	schedule string,
	logger *zap.Logger,
) *CylinderReconciliationJob {
	return &CylinderReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "cylinder_reconciliation_job")),
	}
}

// Start begins the reconciliation job on its configured schedule.
func (j *CylinderReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileCylindersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.Error("cylinder reconciliation sweep failed", zap.Error(err))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cylinder reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the reconciliation job.
func (j *CylinderReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.Info("cylinder reconciliation job stopped")
}
