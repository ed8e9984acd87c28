package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the tick job
const (
	LogMsgTickStarting  = "Scheduled tick starting"
	LogMsgTickCompleted = "Scheduled tick completed"
)

// Log messages for the snapshot job
const (
	LogMsgSnapshotSaved   = "World snapshot saved"
	LogMsgSnapshotFailed  = "World snapshot failed"
	LogMsgSnapshotSkipped = "World snapshot skipped, day unchanged"
)

// AutosaveLabel is the snapshot label the background snapshot job writes to.
const AutosaveLabel = "autosave"

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
