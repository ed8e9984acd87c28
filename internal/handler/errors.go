package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidIDParam    = "Invalid %s parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidDay        = "Invalid day parameter"

	// Simulation operation error messages
	ErrMsgAdvanceDayFailed    = "Failed to advance the day"
	ErrMsgPlaceBuildingFailed = "Failed to place building"
	ErrMsgAssignJobFailed     = "Failed to assign job"
	ErrMsgUnassignJobFailed   = "Failed to unassign job"
	ErrMsgAssignBuilderFailed = "Failed to assign builder"
	ErrMsgApplyEffectFailed   = "Failed to apply effect"

	// Snapshot operation error messages
	ErrMsgSaveSnapshotFailed    = "Failed to save snapshot"
	ErrMsgRestoreSnapshotFailed = "Failed to restore snapshot"
	ErrMsgListSnapshotsFailed   = "Failed to list snapshots"
	ErrMsgEventHistoryFailed    = "Failed to read event history"
)

// User-facing error messages derived from domain errors.
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgVillagerNotFoundError = "Villager not found"
	ErrMsgBuildingNotFoundError = "Building not found"
	ErrMsgBuildingTypeUnknown   = "Unknown building type"
	ErrMsgSlotNotFoundError     = "Job slot not found"
	ErrMsgSlotOccupiedError     = "That job slot is already occupied"
	ErrMsgAlreadyAssignedError  = "Villager already holds a job"
	ErrMsgIneligibleStageError  = "Villager is too young or too old to work"
	ErrMsgIneligibleSoldierErr  = "Only adults can serve as soldiers"
	ErrMsgJobNotFoundError      = "Job type not found"
	ErrMsgEffectNotFoundError   = "Effect not found"
	ErrMsgSiteNotFoundError     = "Construction site not found"
	ErrMsgSiteExistsError       = "A construction site already exists there"
	ErrMsgAlreadyBuiltError     = "Building is already complete"
	ErrMsgSnapshotNotFoundErr   = "Snapshot not found"
)

// Success messages for API responses.
const (
	MsgBuildingPlacedSuccess    = "Building placed"
	MsgJobAssignedSuccess       = "Job assigned"
	MsgJobUnassignedSuccess     = "Job unassigned"
	MsgBuilderAssignedSuccess   = "Builder assigned"
	MsgBuilderUnassignedSuccess = "Builder unassigned"
	MsgEffectAppliedSuccess     = "Effect applied"
	MsgTechnologyAppliedSuccess = "Technology researched"
	MsgSnapshotSavedSuccess     = "Snapshot saved"
	MsgSnapshotRestoredSuccess  = "Snapshot restored"
	MsgResourcesAddedSuccess    = "Resources added"
)
