// Package jobs provides scheduled background tasks for the platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CylinderReconciliationJob - periodically re-projects every in-flight
// order onto its cylinder, repairing registry rows whose projection was lost
// at a transition boundary.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation schedule comes from configuration (six-field cron
// expression with a seconds column). The sweep is idempotent, so the
// frequency is purely an operational choice.
//
// # Error Handling
//
// Per-order projection failures are logged inside the sweep handler and do
// not stop the sweep; a failed sweep run is logged and retried on the next
// tick.
package jobs
