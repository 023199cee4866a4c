// Package prediction implements rollback-safe tasks that wait for attribute changes.
//
// A task subscribes to the attribute source of its focused entity, filters each
// change through a significance check, a tag gate and a comparison, and
// broadcasts qualifying changes to its listeners. Tasks stay consistent when the
// simulation is rewound: a rollback re-derives every binding from the
// authoritative synced state, always releasing stale bindings before creating
// new ones.
//
// All methods run synchronously on the simulation thread and are not safe for
// concurrent use.
package prediction

import "go.trai.ch/rewind/internal/core/domain"

// Host is the ability instance that owns a task.
type Host interface {
	// Owner returns the entity the ability runs on.
	Owner() domain.EntityRef
	// IsReplayingRollback reports whether the simulation is resimulating frames.
	IsReplayingRollback() bool
	// ShouldTriggerCallbacks reports whether the ability still accepts task callbacks.
	ShouldTriggerCallbacks() bool
}

// State is the lifecycle state of a task.
type State uint8

const (
	// StateConfigured is a task that has not been executed yet.
	StateConfigured State = iota
	// StateActive is a task with live subscriptions.
	StateActive
	// StateDeactivated is a task that has ended; it holds no subscriptions.
	StateDeactivated
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateActive:
		return "active"
	case StateDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}
