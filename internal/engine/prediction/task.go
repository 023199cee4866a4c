package prediction

import (
	"slices"

	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
)

// PredictionTask is the surface a rollback controller drives, shared by both
// binding variants.
type PredictionTask interface {
	ID() domain.TaskID
	State() State
	Config() domain.TaskConfig

	// OnAttributeChange is the subscription callback.
	OnAttributeChange(event domain.AttributeChangeEvent)
	// Deactivate ends the task, releasing every subscription.
	Deactivate(wasCancelled bool)
	// OnPreDeactivate releases every subscription. It is safe to call in any state, any number of times.
	OnPreDeactivate(wasCancelled bool)

	// StartTaskRollback rebinds the task to match an authoritative snapshot.
	StartTaskRollback(snapshot domain.SyncedTaskState)
	// ReadFromSyncedData restores externally owned state before a rollback.
	ReadFromSyncedData(state domain.SyncedTaskState)
	// WriteToSyncedData captures the task's synced state for future rollbacks.
	WriteToSyncedData(state *domain.SyncedTaskState)

	OnChange(listener ChangeListener) ListenerID
	RemoveListener(id ListenerID)
}

// Task is the shared implementation behind OwnerTask and TargetTask.
//
// Besides what the attribute sources know, a task tracks which source each of its
// keys is bound to. Binding a key to a new source always releases the old
// binding first, so a task never holds more than one subscription per key no
// matter how often a rollback rebinds it.
type Task struct {
	id       domain.TaskID
	cfg      domain.TaskConfig
	host     Host
	resolver ports.SourceResolver
	focus    Focus

	state     State
	bindings  map[domain.AttributeKey]ports.AttributeSource
	listeners emitter
}

func newTask(
	id domain.TaskID,
	cfg domain.TaskConfig,
	host Host,
	resolver ports.SourceResolver,
	focus Focus,
) *Task {
	cfg = cfg.Normalized()
	return &Task{
		id:       id,
		cfg:      cfg,
		host:     host,
		resolver: resolver,
		focus:    focus,
		bindings: make(map[domain.AttributeKey]ports.AttributeSource, len(cfg.Attributes)),
	}
}

// ID returns the task identifier.
func (t *Task) ID() domain.TaskID {
	return t.id
}

// State returns the lifecycle state.
func (t *Task) State() State {
	return t.state
}

// Config returns a copy of the normalized configuration.
func (t *Task) Config() domain.TaskConfig {
	cfg := t.cfg
	cfg.Attributes = slices.Clone(t.cfg.Attributes)
	return cfg
}

// BoundKeys returns the number of keys that currently hold a subscription.
func (t *Task) BoundKeys() int {
	return len(t.bindings)
}

// OnChange registers a listener for qualifying changes.
func (t *Task) OnChange(listener ChangeListener) ListenerID {
	return t.listeners.add(listener)
}

// RemoveListener unregisters a listener.
func (t *Task) RemoveListener(id ListenerID) {
	t.listeners.remove(id)
}

// OnAttributeChange filters a change and broadcasts it when it qualifies.
// A trigger-once task deactivates itself after its first broadcast.
func (t *Task) OnAttributeChange(event domain.AttributeChangeEvent) {
	if !t.host.ShouldTriggerCallbacks() {
		return
	}
	if !t.cfg.Accepts(event) {
		return
	}

	t.listeners.broadcast(event.Key, event.OldValue, event.NewValue)

	if t.cfg.TriggerOnce {
		t.Deactivate(false)
	}
}

// Deactivate releases all subscriptions and ends the task.
func (t *Task) Deactivate(wasCancelled bool) {
	t.OnPreDeactivate(wasCancelled)
	t.state = StateDeactivated
}

// OnPreDeactivate unsubscribes every configured key from the focused source and
// from any source still recorded as bound, whatever the reason for deactivation.
func (t *Task) OnPreDeactivate(_ bool) {
	src, _ := t.focusedSource()
	t.release(src)
}

// StartTaskRollback binds to, or releases, the source named by the snapshot:
// its external target when set, otherwise the owner.
func (t *Task) StartTaskRollback(snapshot domain.SyncedTaskState) {
	src, ok := t.sourceFor(resolveTarget(snapshot.ExternalTarget, t.host.Owner()))
	if !ok || len(t.cfg.Attributes) == 0 {
		return
	}

	if snapshot.Active {
		t.bind(src)
		t.state = StateActive
		return
	}

	t.release(src)
	t.settleInactive()
}

// ReadFromSyncedData is a no-op for tasks without externally owned state.
func (t *Task) ReadFromSyncedData(domain.SyncedTaskState) {}

// WriteToSyncedData records whether the task is active.
func (t *Task) WriteToSyncedData(state *domain.SyncedTaskState) {
	state.Active = t.state == StateActive
}

// focusedSource resolves the attribute source the task's focus points at.
func (t *Task) focusedSource() (ports.AttributeSource, bool) {
	return t.sourceFor(t.focus.Entity(t.host.Owner()))
}

func (t *Task) sourceFor(entity domain.EntityRef) (ports.AttributeSource, bool) {
	if entity.IsZero() {
		return nil, false
	}
	src, ok := t.resolver.Resolve(entity)
	if !ok || src == nil {
		return nil, false
	}
	return src, true
}

// bind subscribes every configured key on src. Keys already bound to src are
// left alone; keys bound elsewhere are unsubscribed there first.
func (t *Task) bind(src ports.AttributeSource) {
	for _, key := range t.cfg.Attributes {
		if current, ok := t.bindings[key]; ok {
			if current == src {
				continue
			}
			current.Unsubscribe(key, t.id)
		}
		src.Subscribe(key, t.id, t.OnAttributeChange)
		t.bindings[key] = src
	}
}

// unbindFrom unsubscribes every configured key on src.
func (t *Task) unbindFrom(src ports.AttributeSource) {
	for _, key := range t.cfg.Attributes {
		src.Unsubscribe(key, t.id)
		if t.bindings[key] == src {
			delete(t.bindings, key)
		}
	}
}

// release unsubscribes every configured key from src, when given, and from
// every source still recorded as bound.
func (t *Task) release(src ports.AttributeSource) {
	if src != nil {
		t.unbindFrom(src)
	}
	for _, key := range t.cfg.Attributes {
		if bound, ok := t.bindings[key]; ok {
			bound.Unsubscribe(key, t.id)
			delete(t.bindings, key)
		}
	}
}

// settleInactive records an authoritative "not active". A task that was never
// executed stays configured.
func (t *Task) settleInactive() {
	if t.state == StateActive {
		t.state = StateDeactivated
	}
}
