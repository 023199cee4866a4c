package domain

// TaskVariant selects how a task resolves the attribute source it listens to.
type TaskVariant uint8

const (
	// VariantOwner binds to the owning entity.
	VariantOwner TaskVariant = iota
	// VariantTarget binds to an externally supplied target, falling back to the owner.
	VariantTarget
)

// String returns the configuration name of the variant.
func (v TaskVariant) String() string {
	if v == VariantTarget {
		return "target"
	}
	return "owner"
}

// TaskSpec declares one task instance in a scenario.
type TaskSpec struct {
	ID      TaskID
	Variant TaskVariant
	Owner   EntityRef
	Config  TaskConfig
}

// ActionKind enumerates the inputs a scenario frame can carry.
type ActionKind uint8

const (
	// ActionExecute starts a task, optionally with a target.
	ActionExecute ActionKind = iota
	// ActionSet writes an attribute value on an entity.
	ActionSet
	// ActionCancel deactivates a task's ability as a cancellation.
	ActionCancel
	// ActionEnd deactivates a task's ability as a natural end.
	ActionEnd
)

// String returns a short name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionExecute:
		return "execute"
	case ActionSet:
		return "set"
	case ActionCancel:
		return "cancel"
	case ActionEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Action is a single input applied during a frame.
type Action struct {
	Kind      ActionKind
	Task      TaskID
	Target    EntityRef
	Entity    EntityRef
	Attribute AttributeKey
	Value     float64
	// Provenance is attached to ActionSet writes; nil means no effect data.
	Provenance *Provenance
}

// Frame holds the inputs of one simulation step.
type Frame struct {
	Index   int
	Actions []Action
}

// Correction is authoritative data arriving at frame At that describes the
// state at the end of frame Frame.
type Correction struct {
	At    int
	Frame int
	Tasks map[TaskID]SyncedTaskState
	// Attributes overrides predicted attribute values. Unlisted values keep their prediction.
	Attributes map[EntityRef]map[AttributeKey]float64
}

// Scenario is a fully validated, deterministic simulation input.
type Scenario struct {
	Name        string
	Source      string
	Entities    map[EntityRef]map[AttributeKey]float64
	Tasks       []TaskSpec
	Frames      []Frame
	Corrections []Correction
}

// MaxFrame is the highest frame index a scenario may reference.
const MaxFrame = 100_000

// LastFrame returns the highest frame index the scenario needs to simulate,
// covering both input frames and correction arrivals.
func (s *Scenario) LastFrame() int {
	last := -1
	for _, f := range s.Frames {
		last = max(last, f.Index)
	}
	for _, c := range s.Corrections {
		last = max(last, c.At)
	}
	return last
}
