package prediction

import (
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
)

var _ PredictionTask = (*TargetTask)(nil)

// TargetTask waits for attribute changes on an external target supplied at
// execution time. The target is part of the task's synced state so a rollback
// rebinds to the same entity the authority saw.
type TargetTask struct {
	*Task
	focus *TargetFocus
}

// NewTargetTask creates a target-bound task.
func NewTargetTask(id domain.TaskID, cfg domain.TaskConfig, host Host, resolver ports.SourceResolver) *TargetTask {
	focus := &TargetFocus{}
	return &TargetTask{
		Task:  newTask(id, cfg, host, resolver, focus),
		focus: focus,
	}
}

// Target returns the cached external target.
func (t *TargetTask) Target() domain.EntityRef {
	return t.focus.Target
}

// ExecuteWithTarget caches target and subscribes to its source, or to the
// owner's source when target is empty. During a rollback replay it does nothing.
func (t *TargetTask) ExecuteWithTarget(target domain.EntityRef) {
	if t.host.IsReplayingRollback() {
		return
	}

	t.focus.Target = target

	src, ok := t.focusedSource()
	if !ok || len(t.cfg.Attributes) == 0 {
		return
	}

	t.bind(src)
	t.state = StateActive
}

// StartTaskRollback unbinds from whatever is focused now and then binds to the
// source the snapshot names. The authoritative target replaces the cached one,
// and an empty target means the owner.
func (t *TargetTask) StartTaskRollback(snapshot domain.SyncedTaskState) {
	if !snapshot.Active {
		current, _ := t.focusedSource()
		t.release(current)
		t.settleInactive()
		return
	}

	src, ok := t.sourceFor(resolveTarget(snapshot.ExternalTarget, t.host.Owner()))
	if !ok || len(t.cfg.Attributes) == 0 {
		return
	}

	if current, ok := t.focusedSource(); ok {
		t.unbindFrom(current)
	}
	t.focus.Target = snapshot.ExternalTarget
	t.bind(src)
	t.state = StateActive
}

// ReadFromSyncedData restores the cached target.
func (t *TargetTask) ReadFromSyncedData(state domain.SyncedTaskState) {
	t.focus.Target = state.ExternalTarget
}

// WriteToSyncedData records the active flag and the cached target.
func (t *TargetTask) WriteToSyncedData(state *domain.SyncedTaskState) {
	t.Task.WriteToSyncedData(state)
	state.ExternalTarget = t.focus.Target
}
