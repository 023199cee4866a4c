package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownComparison is returned when a comparison name cannot be parsed.
	ErrUnknownComparison = zerr.New("unknown comparison")

	// ErrUnknownVariant is returned when a task declares a binding variant other than owner or target.
	ErrUnknownVariant = zerr.New("unknown task variant, expected 'owner' or 'target'")

	// ErrUnknownEntity is returned when a scenario references an entity that is not declared.
	ErrUnknownEntity = zerr.New("unknown entity")

	// ErrDuplicateEntity is returned when an entity is registered twice.
	ErrDuplicateEntity = zerr.New("duplicate entity")

	// ErrUnknownTask is returned when a scenario references a task that is not declared.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrDuplicateTask is returned when a scenario declares the same task twice.
	ErrDuplicateTask = zerr.New("duplicate task")

	// ErrInvalidAction is returned when a frame action does not name exactly one operation.
	ErrInvalidAction = zerr.New("invalid action, expected exactly one of execute, set, cancel or end")

	// ErrDuplicateFrame is returned when a scenario lists the same frame twice.
	ErrDuplicateFrame = zerr.New("duplicate frame")

	// ErrNegativeFrame is returned when a frame index is negative.
	ErrNegativeFrame = zerr.New("frame index must not be negative")

	// ErrFrameTooLarge is returned when a frame index exceeds MaxFrame.
	ErrFrameTooLarge = zerr.New("frame index exceeds the maximum")

	// ErrCorrectionInFuture is returned when a correction targets a frame after its arrival frame
	// or a frame the simulation has not reached yet.
	ErrCorrectionInFuture = zerr.New("correction must target a frame before its arrival")

	// ErrFrameNotSequential is returned when frames are not advanced one at a time.
	ErrFrameNotSequential = zerr.New("frames must be advanced in order without gaps")

	// ErrFrameOutOfHistory is returned when a rollback targets a frame no longer held in history.
	ErrFrameOutOfHistory = zerr.New("frame is outside the rollback history window")

	// ErrMissingScenarioName is returned when a scenario file has no name.
	ErrMissingScenarioName = zerr.New("missing scenario name")

	// ErrDuplicateScenarioName is returned when two loaded scenarios share a name.
	ErrDuplicateScenarioName = zerr.New("duplicate scenario name")

	// ErrNoScenarios is returned when no scenario files are found for the given paths.
	ErrNoScenarios = zerr.New("no scenario files found")

	// ErrConfigReadFailed is returned when a scenario file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read scenario file")

	// ErrConfigParseFailed is returned when a scenario file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse scenario file")

	// ErrStoreCreateFailed is returned when the timeline store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create timeline store directory")

	// ErrStoreReadFailed is returned when a timeline cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read timeline")

	// ErrStoreUnmarshalFailed is returned when a timeline cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal timeline")

	// ErrStoreMarshalFailed is returned when a timeline cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal timeline")

	// ErrStoreWriteFailed is returned when a timeline cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write timeline")

	// ErrWatchFailed is returned when scenario files cannot be watched for changes.
	ErrWatchFailed = zerr.New("failed to watch scenario files")

	// ErrTimelineNotFound is returned when no timeline is stored for a scenario.
	ErrTimelineNotFound = zerr.New("no recorded timeline for scenario")

	// ErrSimulationFailed is returned when one or more scenarios fail to simulate or record.
	// The failures joined with it have already been reported to the user.
	ErrSimulationFailed = zerr.New("simulation failed")
)
