package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// OTPTTLMinutes is the validity window of issued handoff codes.
	OTPTTLMinutes int

	// ReconciliationSchedule is a six-field cron expression for the
	// cylinder reconciliation sweep.
	ReconciliationSchedule string
}
