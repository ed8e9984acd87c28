package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Roster errors
	ErrMsgVillagerNotFound = "villager not found"
	ErrMsgBuildingNotFound = "building not found"

	// Assignment errors
	ErrMsgSlotNotFound      = "job slot not found"
	ErrMsgSlotOccupied      = "job slot is occupied"
	ErrMsgAlreadyAssigned   = "villager is already assigned"
	ErrMsgIneligibleStage   = "life stage is not work-eligible"
	ErrMsgIneligibleSoldier = "only adults may hold soldier roles"

	// Job errors
	ErrMsgJobNotFound = "job type not found"

	// Effect errors
	ErrMsgEffectNotFound = "effect template not found"

	// Construction errors
	ErrMsgSiteNotFound = "construction site not found"
	ErrMsgSiteExists   = "construction site already exists"
	ErrMsgAlreadyBuilt = "building is already complete"

	// Snapshot errors
	ErrMsgSnapshotNotFound = "snapshot not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Roster errors
	ErrVillagerNotFound = errors.New(ErrMsgVillagerNotFound)
	ErrBuildingNotFound = errors.New(ErrMsgBuildingNotFound)

	// Assignment errors
	ErrSlotNotFound      = errors.New(ErrMsgSlotNotFound)
	ErrSlotOccupied      = errors.New(ErrMsgSlotOccupied)
	ErrAlreadyAssigned   = errors.New(ErrMsgAlreadyAssigned)
	ErrIneligibleStage   = errors.New(ErrMsgIneligibleStage)
	ErrIneligibleSoldier = errors.New(ErrMsgIneligibleSoldier)

	// Job errors
	ErrJobNotFound = errors.New(ErrMsgJobNotFound)

	// Effect errors
	ErrEffectNotFound = errors.New(ErrMsgEffectNotFound)

	// Construction errors
	ErrSiteNotFound = errors.New(ErrMsgSiteNotFound)
	ErrSiteExists   = errors.New(ErrMsgSiteExists)
	ErrAlreadyBuilt = errors.New(ErrMsgAlreadyBuilt)

	// Snapshot errors
	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
