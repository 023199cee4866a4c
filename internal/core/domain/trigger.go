package domain

// Trigger records one broadcast of a task's change event.
type Trigger struct {
	Frame     int          `json:"frame"`
	Task      TaskID       `json:"task"`
	Attribute AttributeKey `json:"attribute"`
	OldValue  float64      `json:"old"`
	NewValue  float64      `json:"new"`
	// Replayed is set when the broadcast happened while resimulating after a rollback.
	Replayed bool `json:"replayed,omitempty"`
}

// RollbackRecord describes one reconciliation against authoritative data.
type RollbackRecord struct {
	At       int  `json:"at"`
	Frame    int  `json:"frame"`
	Resimmed bool `json:"resimulated"`
	// Replayed is the number of frames resimulated after the rewind.
	Replayed int `json:"replayed"`
}

// FrameState is the synced state of every task after one frame.
type FrameState struct {
	Frame int                        `json:"frame"`
	Tasks map[TaskID]SyncedTaskState `json:"tasks"`
}

// Timeline is the complete recorded outcome of a scenario run.
type Timeline struct {
	Scenario  string           `json:"scenario"`
	Frames    []FrameState     `json:"frames"`
	Triggers  []Trigger        `json:"triggers"`
	Rollbacks []RollbackRecord `json:"rollbacks"`
}
