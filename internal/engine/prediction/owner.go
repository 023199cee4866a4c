package prediction

import (
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
)

var _ PredictionTask = (*OwnerTask)(nil)

// OwnerTask waits for attribute changes on the entity that owns its ability.
type OwnerTask struct {
	*Task
}

// NewOwnerTask creates an owner-bound task.
func NewOwnerTask(id domain.TaskID, cfg domain.TaskConfig, host Host, resolver ports.SourceResolver) *OwnerTask {
	return &OwnerTask{Task: newTask(id, cfg, host, resolver, OwnerFocus{})}
}

// Execute subscribes every configured key on the owner's source and activates
// the task. During a rollback replay binding is left to StartTaskRollback.
func (t *OwnerTask) Execute() {
	if t.host.IsReplayingRollback() {
		return
	}

	src, ok := t.focusedSource()
	if !ok || len(t.cfg.Attributes) == 0 {
		return
	}

	t.bind(src)
	t.state = StateActive
}
