// Package rollback reconciles a predicted simulation with authoritative data.
//
// The controller records the inputs and resulting state of every frame in a
// bounded history. When a correction disagrees with what was predicted for a
// frame, the simulation is rewound to the corrected state and the recorded
// inputs since then are replayed.
package rollback

import (
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultHistorySize is the number of frames kept for rollbacks.
const DefaultHistorySize = 128

// Simulation is the state machine driven by a Controller.
type Simulation interface {
	Step(frame domain.Frame) error
	Capture() domain.Snapshot
	Rewind(snapshot domain.Snapshot)
	SetReplaying(replaying bool)
}

type entry struct {
	input domain.Frame
	state domain.Snapshot
	valid bool
}

// Controller owns the frame history of one simulation.
type Controller struct {
	sim     Simulation
	history []entry
	present int
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistorySize overrides DefaultHistorySize. Sizes below one are ignored.
func WithHistorySize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.history = make([]entry, size)
		}
	}
}

// New creates a Controller for sim, which must not have simulated any frame yet.
func New(sim Simulation, opts ...Option) *Controller {
	c := &Controller{
		sim:     sim,
		history: make([]entry, DefaultHistorySize),
		present: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Present returns the last simulated frame, or -1 before the first.
func (c *Controller) Present() int {
	return c.present
}

// Advance simulates the next frame and records it. Frames must be advanced in
// order starting at zero.
func (c *Controller) Advance(frame domain.Frame) error {
	if frame.Index != c.present+1 {
		return zerr.With(zerr.With(domain.ErrFrameNotSequential, "frame", frame.Index), "expected", c.present+1)
	}

	if err := c.sim.Step(frame); err != nil {
		return err
	}

	c.present = frame.Index
	c.history[c.slot(frame.Index)] = entry{input: frame, state: c.sim.Capture(), valid: true}
	return nil
}

// Predicted returns the recorded state at the end of frame, when it is still in history.
func (c *Controller) Predicted(frame int) (domain.Snapshot, bool) {
	e, ok := c.lookup(frame)
	if !ok {
		return domain.Snapshot{}, false
	}
	return e.state.Clone(), true
}

// Reconcile compares correction with the prediction for its frame. A mismatch in
// any listed task state, or any authoritative attribute value, rewinds the
// simulation to the corrected state and replays every later frame. A matching
// correction leaves the simulation untouched.
func (c *Controller) Reconcile(correction domain.Correction) (domain.RollbackRecord, error) {
	record := domain.RollbackRecord{At: c.present, Frame: correction.Frame}

	if correction.Frame < 0 {
		return record, zerr.With(domain.ErrNegativeFrame, "frame", correction.Frame)
	}
	if correction.Frame > c.present {
		return record, zerr.With(zerr.With(domain.ErrCorrectionInFuture, "frame", correction.Frame), "present", c.present)
	}

	predicted, ok := c.lookup(correction.Frame)
	if !ok {
		return record, zerr.With(zerr.With(domain.ErrFrameOutOfHistory, "frame", correction.Frame), "window", len(c.history))
	}

	corrected := predicted.state.Clone()
	mismatch := corrected.Apply(correction)
	if !mismatch && len(correction.Attributes) == 0 {
		return record, nil
	}

	record.Resimmed = true
	c.history[c.slot(correction.Frame)].state = corrected

	c.sim.SetReplaying(true)
	defer c.sim.SetReplaying(false)

	c.sim.Rewind(corrected.Clone())

	for frame := correction.Frame + 1; frame <= c.present; frame++ {
		i := c.slot(frame)
		if err := c.sim.Step(c.history[i].input); err != nil {
			return record, err
		}
		c.history[i].state = c.sim.Capture()
		record.Replayed++
	}

	return record, nil
}

func (c *Controller) slot(frame int) int {
	return frame % len(c.history)
}

func (c *Controller) lookup(frame int) (*entry, bool) {
	if frame < 0 || frame > c.present || c.present-frame >= len(c.history) {
		return nil, false
	}
	e := &c.history[c.slot(frame)]
	if !e.valid || e.state.Frame != frame {
		return nil, false
	}
	return e, true
}
