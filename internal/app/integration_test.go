package app_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rewind/internal/adapters/config"
	"go.trai.ch/rewind/internal/adapters/detector"
	"go.trai.ch/rewind/internal/adapters/telemetry"
	"go.trai.ch/rewind/internal/adapters/timeline"
	"go.trai.ch/rewind/internal/app"
	"go.trai.ch/rewind/internal/core/domain"
	"go.trai.ch/rewind/internal/core/ports"
	"go.trai.ch/rewind/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestApp_RunExamples(t *testing.T) {
	examples, err := filepath.Abs(filepath.Join("..", "..", "examples"))
	require.NoError(t, err)
	root := t.TempDir()
	t.Chdir(root)

	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	store := timeline.NewStore()
	watchers := func() (ports.Watcher, error) { return nil, nil }
	a := app.New(config.NewLoader(log), store, log, telemetry.NewNoOpTracer(), watchers).
		WithOutput(new(bytes.Buffer), new(bytes.Buffer))

	err = a.Run(t.Context(), []string{examples}, app.RunOptions{Record: true, Color: detector.ColorNever})
	require.NoError(t, err)

	t.Run("burn-check rewinds onto the hero", func(t *testing.T) {
		tl, err := store.Get(root, "burn-check")
		require.NoError(t, err)
		require.NotNil(t, tl)

		assert.Equal(t, []domain.RollbackRecord{{At: 4, Frame: 1, Resimmed: true, Replayed: 3}}, tl.Rollbacks)
		assert.Contains(t, tl.Triggers, domain.Trigger{
			Frame: 1, Task: "watch-dummy", Attribute: "Health", OldValue: 200, NewValue: 120,
		})
		assert.Contains(t, tl.Triggers, domain.Trigger{
			Frame: 2, Task: "watch-dummy", Attribute: "Health", OldValue: 100, NewValue: 90, Replayed: true,
		})
		assert.Equal(t, domain.EntityRef("hero"), tl.Frames[1].Tasks["watch-dummy"].ExternalTarget)
	})

	t.Run("mana-shield matches its prediction", func(t *testing.T) {
		tl, err := store.Get(root, "mana-shield")
		require.NoError(t, err)
		require.NotNil(t, tl)

		assert.Equal(t, []domain.RollbackRecord{{At: 2, Frame: 1}}, tl.Rollbacks)
		assert.Equal(t, []domain.Trigger{
			{Frame: 1, Task: "shield", Attribute: "Mana", OldValue: 80, NewValue: 45},
		}, tl.Triggers)
		assert.False(t, tl.Frames[3].Tasks["shield"].Active)
	})
}
