package rollback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/engine/rollback"
	"go.trai.ch/rewind/internal/engine/simulation"
)

type fixture struct {
	world    *simulation.World
	ctrl     *rollback.Controller
	triggers []domain.Trigger
}

// newFixture simulates frames 0 to 3: the task binds to dummy, then both
// dummy and decoy lose health.
func newFixture(t *testing.T, opts ...rollback.Option) *fixture {
	t.Helper()

	w, err := simulation.NewWorld(&domain.Scenario{
		Name: "rebind",
		Entities: map[domain.EntityRef]map[domain.AttributeKey]float64{
			"hero":  {"Health": 100},
			"dummy": {"Health": 200},
			"decoy": {"Health": 300},
		},
		Tasks: []domain.TaskSpec{{
			ID:      "watch",
			Variant: domain.VariantTarget,
			Owner:   "hero",
			Config:  domain.TaskConfig{Attributes: []domain.AttributeKey{"Health"}},
		}},
	})
	require.NoError(t, err)

	f := &fixture{world: w, ctrl: rollback.New(w, opts...)}
	w.OnTrigger(func(tr domain.Trigger) { f.triggers = append(f.triggers, tr) })

	frames := []domain.Frame{
		{Index: 0, Actions: []domain.Action{{Kind: domain.ActionExecute, Task: "watch", Target: "dummy"}}},
		{Index: 1, Actions: []domain.Action{setHealth("dummy", 190)}},
		{Index: 2, Actions: []domain.Action{setHealth("dummy", 180), setHealth("decoy", 290)}},
		{Index: 3, Actions: []domain.Action{setHealth("decoy", 280)}},
	}
	for _, frame := range frames {
		require.NoError(t, f.ctrl.Advance(frame))
	}
	f.triggers = nil
	return f
}

func setHealth(entity domain.EntityRef, value float64) domain.Action {
	return domain.Action{Kind: domain.ActionSet, Entity: entity, Attribute: "Health", Value: value}
}

func (f *fixture) subscriptions(t *testing.T, entity domain.EntityRef) int {
	t.Helper()
	set, ok := f.world.Registry().Set(entity)
	require.True(t, ok)
	return set.SubscriptionCount()
}

func TestController_MatchingCorrectionDoesNotResimulate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	record, err := f.ctrl.Reconcile(domain.Correction{
		At:    3,
		Frame: 1,
		Tasks: map[domain.TaskID]domain.SyncedTaskState{"watch": {Active: true, ExternalTarget: "dummy"}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RollbackRecord{At: 3, Frame: 1}, record)
	assert.Empty(t, f.triggers)
	assert.Equal(t, 1, f.subscriptions(t, "dummy"))
}

func TestController_RebindsToAuthoritativeTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	record, err := f.ctrl.Reconcile(domain.Correction{
		At:    3,
		Frame: 0,
		Tasks: map[domain.TaskID]domain.SyncedTaskState{"watch": {Active: true, ExternalTarget: "decoy"}},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RollbackRecord{At: 3, Frame: 0, Resimmed: true, Replayed: 3}, record)
	assert.Equal(t, []domain.Trigger{
		{Frame: 2, Task: "watch", Attribute: "Health", OldValue: 300, NewValue: 290, Replayed: true},
		{Frame: 3, Task: "watch", Attribute: "Health", OldValue: 290, NewValue: 280, Replayed: true},
	}, f.triggers)

	assert.Equal(t, 0, f.subscriptions(t, "dummy"))
	assert.Equal(t, 1, f.subscriptions(t, "decoy"))

	predicted, ok := f.ctrl.Predicted(3)
	require.True(t, ok)
	assert.Equal(t, domain.SyncedTaskState{Active: true, ExternalTarget: "decoy"}, predicted.Tasks["watch"])
	assert.Equal(t, 180.0, predicted.Attributes["dummy"]["Health"])
}

func TestController_RepeatedRollbacksDoNotLeak(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	targets := []domain.EntityRef{"decoy", "dummy", "decoy", "hero", "decoy"}
	for _, target := range targets {
		_, err := f.ctrl.Reconcile(domain.Correction{
			At:    3,
			Frame: 1,
			Tasks: map[domain.TaskID]domain.SyncedTaskState{"watch": {Active: true, ExternalTarget: target}},
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 0, f.subscriptions(t, "dummy"))
	assert.Equal(t, 0, f.subscriptions(t, "hero"))
	assert.Equal(t, 1, f.subscriptions(t, "decoy"))
	assert.Equal(t, 1, f.world.Registry().SubscriptionCount())
}

func TestController_AttributeCorrectionResimulates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	record, err := f.ctrl.Reconcile(domain.Correction{
		At:         3,
		Frame:      1,
		Attributes: map[domain.EntityRef]map[domain.AttributeKey]float64{"dummy": {"Health": 150}},
	})

	require.NoError(t, err)
	assert.True(t, record.Resimmed)
	assert.Equal(t, 2, record.Replayed)
	assert.Equal(t, []domain.Trigger{
		{Frame: 2, Task: "watch", Attribute: "Health", OldValue: 150, NewValue: 180, Replayed: true},
	}, f.triggers)

	corrected, ok := f.ctrl.Predicted(1)
	require.True(t, ok)
	assert.Equal(t, 150.0, corrected.Attributes["dummy"]["Health"])
	assert.Equal(t, 100.0, corrected.Attributes["hero"]["Health"])
}

func TestController_InactiveCorrectionReleasesSubscriptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.ctrl.Reconcile(domain.Correction{
		At:    3,
		Frame: 1,
		Tasks: map[domain.TaskID]domain.SyncedTaskState{"watch": {}},
	})

	require.NoError(t, err)
	assert.Empty(t, f.triggers)
	assert.Equal(t, 0, f.world.Registry().SubscriptionCount())

	predicted, ok := f.ctrl.Predicted(3)
	require.True(t, ok)
	assert.False(t, predicted.Tasks["watch"].Active)
}

func TestController_Errors(t *testing.T) {
	t.Parallel()

	t.Run("frames out of order", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		err := f.ctrl.Advance(domain.Frame{Index: 5})
		require.ErrorContains(t, err, domain.ErrFrameNotSequential.Error())
		assert.Equal(t, 3, f.ctrl.Present())
	})

	t.Run("future frame", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.ctrl.Reconcile(domain.Correction{At: 3, Frame: 4})
		require.ErrorContains(t, err, domain.ErrCorrectionInFuture.Error())
	})

	t.Run("negative frame", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		_, err := f.ctrl.Reconcile(domain.Correction{At: 3, Frame: -1})
		require.ErrorContains(t, err, domain.ErrNegativeFrame.Error())
	})

	t.Run("outside history window", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, rollback.WithHistorySize(2))

		_, err := f.ctrl.Reconcile(domain.Correction{At: 3, Frame: 1})
		require.ErrorContains(t, err, domain.ErrFrameOutOfHistory.Error())

		_, ok := f.ctrl.Predicted(1)
		assert.False(t, ok)

		record, err := f.ctrl.Reconcile(domain.Correction{At: 3, Frame: 2})
		require.NoError(t, err)
		assert.False(t, record.Resimmed)
	})
}
