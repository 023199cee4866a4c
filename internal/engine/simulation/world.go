// Package simulation runs scenarios frame by frame against in-memory entities.
package simulation

import (
	"maps"
	"slices"

	"go.trai.ch/rewind/internal/adapters/attributes"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/engine/prediction"
	"go.trai.ch/zerr"
)

// TriggerFunc receives every task broadcast.
type TriggerFunc func(domain.Trigger)

// ability is the host of a single task.
type ability struct {
	world *World
	owner domain.EntityRef
	ended bool
}

func (a *ability) Owner() domain.EntityRef      { return a.owner }
func (a *ability) IsReplayingRollback() bool    { return a.world.replaying }
func (a *ability) ShouldTriggerCallbacks() bool { return !a.ended }

type slot struct {
	spec domain.TaskSpec
	host *ability
	task prediction.PredictionTask
}

// World is the deterministic state of one scenario: its entities, one ability
// per task, and the current frame. It is driven from a single goroutine.
type World struct {
	registry  *attributes.Registry
	slots     []*slot
	byID      map[domain.TaskID]*slot
	frame     int
	replaying bool
	onTrigger TriggerFunc
}

// NewWorld builds the entities and tasks declared by scenario.
func NewWorld(scenario *domain.Scenario) (*World, error) {
	w := &World{
		registry: attributes.NewRegistry(),
		byID:     make(map[domain.TaskID]*slot, len(scenario.Tasks)),
		frame:    -1,
	}

	for _, entity := range slices.Sorted(maps.Keys(scenario.Entities)) {
		if _, err := w.registry.Add(entity, scenario.Entities[entity]); err != nil {
			return nil, err
		}
	}

	for _, spec := range scenario.Tasks {
		if _, ok := w.registry.Resolve(spec.Owner); !ok {
			return nil, zerr.With(zerr.With(domain.ErrUnknownEntity, "entity", spec.Owner), "task", spec.ID)
		}
		if _, ok := w.byID[spec.ID]; ok {
			return nil, zerr.With(domain.ErrDuplicateTask, "task", spec.ID)
		}

		s := &slot{spec: spec, host: &ability{world: w, owner: spec.Owner}}
		switch spec.Variant {
		case domain.VariantOwner:
			s.task = prediction.NewOwnerTask(spec.ID, spec.Config, s.host, w.registry)
		case domain.VariantTarget:
			s.task = prediction.NewTargetTask(spec.ID, spec.Config, s.host, w.registry)
		default:
			return nil, zerr.With(domain.ErrUnknownVariant, "task", spec.ID)
		}

		id := spec.ID
		s.task.OnChange(func(key domain.AttributeKey, oldValue, newValue float64) {
			w.emit(domain.Trigger{
				Frame:     w.frame,
				Task:      id,
				Attribute: key,
				OldValue:  oldValue,
				NewValue:  newValue,
				Replayed:  w.replaying,
			})
		})

		w.slots = append(w.slots, s)
		w.byID[spec.ID] = s
	}

	return w, nil
}

// OnTrigger sets the function that receives task broadcasts.
func (w *World) OnTrigger(fn TriggerFunc) {
	w.onTrigger = fn
}

// Frame returns the index of the last simulated frame, or -1 before the first.
func (w *World) Frame() int {
	return w.frame
}

// Registry returns the entity registry.
func (w *World) Registry() *attributes.Registry {
	return w.registry
}

// Task returns the task with the given id.
func (w *World) Task(id domain.TaskID) (prediction.PredictionTask, bool) {
	s, ok := w.byID[id]
	if !ok {
		return nil, false
	}
	return s.task, true
}

// SetReplaying marks whether subsequent frames are a resimulation.
func (w *World) SetReplaying(replaying bool) {
	w.replaying = replaying
}

// Step applies the actions of frame in order.
func (w *World) Step(frame domain.Frame) error {
	w.frame = frame.Index
	for _, action := range frame.Actions {
		if err := w.apply(action); err != nil {
			return zerr.With(err, "frame", frame.Index)
		}
	}
	return nil
}

// Capture returns the synced state of every task and the value of every attribute.
func (w *World) Capture() domain.Snapshot {
	snap := domain.Snapshot{
		Frame:      w.frame,
		Tasks:      make(map[domain.TaskID]domain.SyncedTaskState, len(w.slots)),
		Attributes: w.registry.Snapshot(),
	}
	for _, s := range w.slots {
		var state domain.SyncedTaskState
		s.task.WriteToSyncedData(&state)
		snap.Tasks[s.spec.ID] = state
	}
	return snap
}

// Rewind resets the world to snapshot. Attribute values are restored silently,
// then every task reads its synced state and rebinds from it.
func (w *World) Rewind(snapshot domain.Snapshot) {
	w.frame = snapshot.Frame
	w.registry.Restore(snapshot.Attributes)

	for _, s := range w.slots {
		state := snapshot.Tasks[s.spec.ID]
		s.host.ended = !state.Active
		s.task.ReadFromSyncedData(state)
		s.task.StartTaskRollback(state)
	}
}

func (w *World) apply(action domain.Action) error {
	switch action.Kind {
	case domain.ActionSet:
		set, ok := w.registry.Set(action.Entity)
		if !ok {
			return zerr.With(domain.ErrUnknownEntity, "entity", action.Entity)
		}
		set.SetValue(action.Attribute, action.Value, action.Provenance)
		return nil
	case domain.ActionExecute, domain.ActionCancel, domain.ActionEnd:
	default:
		return zerr.With(domain.ErrInvalidAction, "kind", action.Kind.String())
	}

	s, ok := w.byID[action.Task]
	if !ok {
		return zerr.With(domain.ErrUnknownTask, "task", action.Task)
	}

	if action.Kind == domain.ActionExecute {
		w.execute(s, action.Target)
		return nil
	}

	s.host.ended = true
	s.task.Deactivate(action.Kind == domain.ActionCancel)
	return nil
}

func (w *World) execute(s *slot, target domain.EntityRef) {
	s.host.ended = false

	if w.replaying {
		// Activation during a resimulation goes through the rollback path.
		state := domain.SyncedTaskState{Active: true}
		if s.spec.Variant == domain.VariantTarget {
			state.ExternalTarget = target
		}
		s.task.ReadFromSyncedData(state)
		s.task.StartTaskRollback(state)
		return
	}

	switch task := s.task.(type) {
	case *prediction.OwnerTask:
		task.Execute()
	case *prediction.TargetTask:
		task.ExecuteWithTarget(target)
	}
}

func (w *World) emit(trigger domain.Trigger) {
	if w.onTrigger != nil {
		w.onTrigger(trigger)
	}
}
