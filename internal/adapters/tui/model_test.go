package tui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rewind/internal/adapters/tui"
	"go.trai.ch/rewind/internal/core/domain"
)

func sampleTimeline() *domain.Timeline {
	frames := make([]domain.FrameState, 6)
	for i := range frames {
		frames[i] = domain.FrameState{Frame: i, Tasks: map[domain.TaskID]domain.SyncedTaskState{
			"watch": {Active: i > 0, ExternalTarget: "dummy"},
		}}
	}
	return &domain.Timeline{
		Scenario: "burn-check",
		Frames:   frames,
		Triggers: []domain.Trigger{
			{Frame: 1, Task: "watch", Attribute: "Health", OldValue: 200, NewValue: 120},
			{Frame: 4, Task: "watch", Attribute: "Health", OldValue: 100, NewValue: 90, Replayed: true},
		},
		Rollbacks: []domain.RollbackRecord{{At: 5, Frame: 3, Resimmed: true, Replayed: 2}},
	}
}

func updateModel(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*tui.Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	m := tui.NewModel(sampleTimeline())

	assert.Equal(t, "burn-check", m.Scenario)
	require.Len(t, m.Frames, 6)
	assert.Len(t, m.Frames[1].Triggers, 1)
	assert.Len(t, m.Frames[4].Triggers, 1)
	assert.True(t, m.Frames[3].Rewound())
	assert.False(t, m.Frames[2].Eventful())
	assert.Equal(t, 0, m.Selected().Frame)
}

func TestModel_Update(t *testing.T) {
	t.Parallel()

	t.Run("window resizing", func(t *testing.T) {
		t.Parallel()
		m := tui.NewModel(sampleTimeline())

		width, height := 100, 40
		m, _ = updateModel(m, tea.WindowSizeMsg{Width: width, Height: height})

		assert.Equal(t, width-int(float64(width)*0.3)-4, m.DetailWidth)
		assert.Positive(t, m.ListHeight)
		assert.Less(t, m.ListHeight, height)
		assert.Positive(t, m.DetailHeight)
	})

	t.Run("navigation", func(t *testing.T) {
		t.Parallel()
		m := tui.NewModel(sampleTimeline())

		m, _ = updateModel(m, key("j"))
		assert.Equal(t, 1, m.SelectedIdx)
		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 2, m.SelectedIdx)
		m, _ = updateModel(m, key("k"))
		assert.Equal(t, 1, m.SelectedIdx)

		m, _ = updateModel(m, key("G"))
		assert.Equal(t, 5, m.SelectedIdx)
		m, _ = updateModel(m, key("j"))
		assert.Equal(t, 5, m.SelectedIdx, "selection stays on the last frame")

		m, _ = updateModel(m, key("g"))
		assert.Equal(t, 0, m.SelectedIdx)
		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, 0, m.SelectedIdx, "selection stays on the first frame")
	})

	t.Run("event seeking", func(t *testing.T) {
		t.Parallel()
		m := tui.NewModel(sampleTimeline())

		m, _ = updateModel(m, key("n"))
		assert.Equal(t, 1, m.SelectedIdx)
		m, _ = updateModel(m, key("n"))
		assert.Equal(t, 3, m.SelectedIdx)
		m, _ = updateModel(m, key("n"))
		assert.Equal(t, 4, m.SelectedIdx)
		m, _ = updateModel(m, key("n"))
		assert.Equal(t, 4, m.SelectedIdx, "no later event")

		m, _ = updateModel(m, key("p"))
		assert.Equal(t, 3, m.SelectedIdx)
	})

	t.Run("scrolling keeps the selection visible", func(t *testing.T) {
		t.Parallel()
		m := tui.NewModel(sampleTimeline())
		m.ListHeight = 2

		m, _ = updateModel(m, key("G"))
		assert.Equal(t, 4, m.ListOffset)
		m, _ = updateModel(m, key("g"))
		assert.Equal(t, 0, m.ListOffset)
	})

	t.Run("quit", func(t *testing.T) {
		t.Parallel()
		for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
			m := tui.NewModel(sampleTimeline())
			_, cmd := updateModel(m, msg)
			require.NotNil(t, cmd, msg.String())
			assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
		}
	})

	t.Run("several runes in one message", func(t *testing.T) {
		t.Parallel()
		m := tui.NewModel(sampleTimeline())

		m, cmd := updateModel(m, key("jjk"))
		assert.Nil(t, cmd)
		assert.Equal(t, 1, m.SelectedIdx)

		m, cmd = updateModel(m, key("nq"))
		assert.Equal(t, 3, m.SelectedIdx)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("empty timeline", func(t *testing.T) {
		t.Parallel()
		m := tui.NewModel(&domain.Timeline{Scenario: "empty"})
		m, _ = updateModel(m, key("j"))
		assert.Equal(t, 0, m.SelectedIdx)
		assert.Nil(t, m.Selected())
	})
}
