package bootstrap

// File system permissions
const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// Logger configuration
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for startup and shutdown
const (
	LogMsgLoggingInitialized        = "Logging initialized"
	LogMsgStartingHearthstead       = "Starting Hearthstead"
	LogMsgConfigurationLoaded       = "Configuration loaded"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgEventArchiverRegistered   = "Event archiver registered"
	LogMsgShuttingDownServer        = "Shutting down server..."
	LogMsgServerForcedShutdown      = "Server forced to shutdown"
	LogMsgSchedulerStopped          = "Scheduler stopped"
	LogMsgEventPublisherFlushed     = "Event publisher flushed"
	LogMsgShutdownComplete          = "Shutdown complete"
)
