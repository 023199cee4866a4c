package simulation

import (
	"context"

	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/rewind/internal/engine/rollback"
	"go.trai.ch/zerr"
)

// Runner simulates whole scenarios, reconciling corrections as they arrive.
type Runner struct {
	tracer      ports.Tracer
	renderer    ports.Renderer
	historySize int
}

// NewRunner creates a Runner that reports to renderer and traces with tracer.
func NewRunner(tracer ports.Tracer, renderer ports.Renderer) *Runner {
	return &Runner{
		tracer:      tracer,
		renderer:    renderer,
		historySize: rollback.DefaultHistorySize,
	}
}

// WithHistorySize returns a copy of r that keeps size frames for rollbacks.
func (r *Runner) WithHistorySize(size int) *Runner {
	clone := *r
	clone.historySize = size
	return &clone
}

// Run simulates every frame of scenario from zero to its last frame. Corrections
// are reconciled at the end of their arrival frame, in declaration order.
func (r *Runner) Run(ctx context.Context, scenario *domain.Scenario) (timeline *domain.Timeline, err error) {
	ctx, span := r.tracer.Start(ctx, scenario.Name, ports.WithAttribute("rewind.scenario", scenario.Name))
	defer span.End()

	r.renderer.OnScenarioStart(scenario.Name)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		r.renderer.OnScenarioComplete(scenario.Name, err)
	}()

	world, err := NewWorld(scenario)
	if err != nil {
		return nil, err
	}

	timeline = &domain.Timeline{Scenario: scenario.Name}
	world.OnTrigger(func(trigger domain.Trigger) {
		timeline.Triggers = append(timeline.Triggers, trigger)
		r.renderer.OnTrigger(scenario.Name, trigger)
	})

	frames := make(map[int]domain.Frame, len(scenario.Frames))
	for _, f := range scenario.Frames {
		frames[f.Index] = f
	}
	arrivals := make(map[int][]domain.Correction, len(scenario.Corrections))
	for _, c := range scenario.Corrections {
		arrivals[c.At] = append(arrivals[c.At], c)
	}

	ctrl := rollback.New(world, rollback.WithHistorySize(r.historySize))
	last := scenario.LastFrame()

	for index := 0; index <= last; index++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frame, ok := frames[index]
		if !ok {
			frame = domain.Frame{Index: index}
		}
		if err := ctrl.Advance(frame); err != nil {
			return nil, err
		}
		r.recordFrames(timeline, ctrl, index, index)

		for _, correction := range arrivals[index] {
			if err := r.reconcile(ctx, scenario.Name, timeline, ctrl, correction); err != nil {
				return nil, err
			}
		}
	}

	span.SetAttribute("rewind.frames", last+1)
	span.SetAttribute("rewind.triggers", len(timeline.Triggers))
	span.SetAttribute("rewind.rollbacks", len(timeline.Rollbacks))

	return timeline, nil
}

func (r *Runner) reconcile(
	ctx context.Context,
	name string,
	timeline *domain.Timeline,
	ctrl *rollback.Controller,
	correction domain.Correction,
) error {
	_, span := r.tracer.Start(ctx, "rollback",
		ports.WithAttribute("rewind.frame", correction.Frame),
		ports.WithAttribute("rewind.at", correction.At),
	)
	defer span.End()

	record, err := ctrl.Reconcile(correction)
	if err != nil {
		err = zerr.With(err, "at", correction.At)
		span.RecordError(err)
		return err
	}

	span.SetAttribute("rewind.resimulated", record.Resimmed)
	span.SetAttribute("rewind.replayed", record.Replayed)

	timeline.Rollbacks = append(timeline.Rollbacks, record)
	if record.Resimmed {
		r.recordFrames(timeline, ctrl, correction.Frame, ctrl.Present())
	}
	r.renderer.OnRollback(name, record)
	return nil
}

// recordFrames copies the controller's task states for frames from to to into the timeline.
func (r *Runner) recordFrames(timeline *domain.Timeline, ctrl *rollback.Controller, from, to int) {
	for frame := from; frame <= to; frame++ {
		snapshot, ok := ctrl.Predicted(frame)
		if !ok {
			continue
		}
		state := domain.FrameState{Frame: frame, Tasks: snapshot.Tasks}
		if frame < len(timeline.Frames) {
			timeline.Frames[frame] = state
			continue
		}
		timeline.Frames = append(timeline.Frames, state)
	}
}
