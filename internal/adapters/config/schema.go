package config

// Scenariofile represents the structure of a scenario YAML file.
type Scenariofile struct {
	Name        string                        `yaml:"name"`
	Entities    map[string]map[string]float64 `yaml:"entities"`
	Tasks       map[string]*TaskDTO           `yaml:"tasks"`
	Frames      []FrameDTO                    `yaml:"frames"`
	Corrections []CorrectionDTO               `yaml:"corrections"`
}

// TaskDTO represents a task declaration.
type TaskDTO struct {
	Variant     string   `yaml:"variant"`
	Owner       string   `yaml:"owner"`
	Attributes  []string `yaml:"attributes"`
	Comparison  string   `yaml:"comparison"`
	Threshold   float64  `yaml:"threshold"`
	RequiredTag string   `yaml:"requiredTag"`
	ExcludedTag string   `yaml:"excludedTag"`
	TriggerOnce bool     `yaml:"triggerOnce"`
}

// FrameDTO represents the inputs of one frame.
type FrameDTO struct {
	Frame   int         `yaml:"frame"`
	Actions []ActionDTO `yaml:"actions"`
}

// ActionDTO represents a single action. Exactly one of Execute, Set, Cancel
// and End must be set.
type ActionDTO struct {
	Execute string  `yaml:"execute"`
	Target  string  `yaml:"target"`
	Set     *SetDTO `yaml:"set"`
	Cancel  string  `yaml:"cancel"`
	End     string  `yaml:"end"`
}

// SetDTO represents an attribute write.
type SetDTO struct {
	Entity    string     `yaml:"entity"`
	Attribute string     `yaml:"attribute"`
	Value     float64    `yaml:"value"`
	Source    *SourceDTO `yaml:"source"`
}

// SourceDTO represents the effect that caused a write.
type SourceDTO struct {
	Tags []string `yaml:"tags"`
}

// CorrectionDTO represents authoritative data for a past frame.
type CorrectionDTO struct {
	At         int                           `yaml:"at"`
	Frame      int                           `yaml:"frame"`
	Tasks      map[string]SyncedStateDTO     `yaml:"tasks"`
	Attributes map[string]map[string]float64 `yaml:"attributes"`
}

// SyncedStateDTO represents the synced state of one task.
type SyncedStateDTO struct {
	Active bool   `yaml:"active"`
	Target string `yaml:"target"`
}
