package timeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rewind/internal/adapters/timeline"
	"go.trai.ch/rewind/internal/core/domain"
)

func sample(name string) *domain.Timeline {
	return &domain.Timeline{
		Scenario: name,
		Frames: []domain.FrameState{
			{Frame: 0, Tasks: map[domain.TaskID]domain.SyncedTaskState{"watch": {Active: true, ExternalTarget: "dummy"}}},
		},
		Triggers: []domain.Trigger{
			{Frame: 0, Task: "watch", Attribute: "Health", OldValue: 200, NewValue: 120, Replayed: true},
		},
		Rollbacks: []domain.RollbackRecord{{At: 2, Frame: 0, Resimmed: true, Replayed: 2}},
	}
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := timeline.NewStore()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		want := sample("burn-check")
		require.NoError(t, store.Put(root, want))

		got, err := store.Get(root, "burn-check")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()
		first := sample("overwrite")
		require.NoError(t, store.Put(root, first))

		second := sample("overwrite")
		second.Triggers = nil
		require.NoError(t, store.Put(root, second))

		got, err := store.Get(root, "overwrite")
		require.NoError(t, err)
		assert.Empty(t, got.Triggers)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := store.Get(root, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := timeline.NewStore()
	require.NoError(t, store.Put(root, sample("corrupt")))

	dir := filepath.Join(root, domain.DefaultStorePath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	//nolint:gosec // 0644 is fine for test
	err = os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), 0o600)
	require.NoError(t, err)

	_, err = store.Get(root, "corrupt")
	require.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_PutUnwritableRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, domain.RewindDirName)
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o600))

	err := timeline.NewStore().Put(root, sample("blocked"))
	require.ErrorContains(t, err, domain.ErrStoreCreateFailed.Error())
}
