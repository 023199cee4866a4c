package domain

import "maps"

// SyncedTaskState is the rollback-relevant state of a task at one simulation frame.
// Everything else about a task is recomputed from its configuration and current bindings.
type SyncedTaskState struct {
	Active bool `json:"active" yaml:"active"`
	// ExternalTarget is the entity a target-bound task listens to.
	// Empty means the task falls back to its owner.
	ExternalTarget EntityRef `json:"target,omitempty" yaml:"target,omitempty"`
}

// Snapshot is the complete rollback state of a simulation at the end of one frame.
type Snapshot struct {
	Frame      int
	Tasks      map[TaskID]SyncedTaskState
	Attributes map[EntityRef]map[AttributeKey]float64
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Frame:      s.Frame,
		Tasks:      maps.Clone(s.Tasks),
		Attributes: make(map[EntityRef]map[AttributeKey]float64, len(s.Attributes)),
	}
	if out.Tasks == nil {
		out.Tasks = make(map[TaskID]SyncedTaskState)
	}
	for entity, values := range s.Attributes {
		out.Attributes[entity] = maps.Clone(values)
	}
	return out
}

// Apply overlays authoritative data from c onto the snapshot in place.
// It reports whether any listed task state differs from the snapshot.
func (s Snapshot) Apply(c Correction) (mismatch bool) {
	for id, state := range c.Tasks {
		if predicted, ok := s.Tasks[id]; !ok || predicted != state {
			mismatch = true
		}
		s.Tasks[id] = state
	}
	for entity, values := range c.Attributes {
		current, ok := s.Attributes[entity]
		if !ok {
			current = make(map[AttributeKey]float64, len(values))
			s.Attributes[entity] = current
		}
		maps.Copy(current, values)
	}
	return mismatch
}
