package constants

const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	// Default pagination
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100

	// Slot engine policy defaults
	DefaultMinimumApplicants = 5
	DefaultAssignRetries     = 3
	ProfileCacheTTLMinutes   = 10

	// Asynq task types
	TaskNotificationDeliver = "notification:deliver"
	TaskReminderScan        = "notification:reminder_scan"
)
