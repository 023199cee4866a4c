package tui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/rewind/internal/adapters/tui"
	"go.trai.ch/rewind/internal/core/domain"
)

func TestView_Initialization(t *testing.T) {
	t.Parallel()
	m := tui.NewModel(sampleTimeline())
	assert.Contains(t, m.View(), "Initializing...")
}

func TestView_FrameList(t *testing.T) {
	t.Parallel()

	m := tui.NewModel(sampleTimeline())
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	output := m.View()

	assert.Contains(t, output, "FRAMES")
	assert.Contains(t, output, "frame 0")
	assert.Contains(t, output, "frame 5")
	assert.Contains(t, output, "○")
	assert.Contains(t, output, "●")
	assert.Contains(t, output, "↺")
	assert.Contains(t, output, ">")
	assert.Contains(t, output, "q quit")
}

func TestView_Detail(t *testing.T) {
	t.Parallel()

	m := tui.NewModel(sampleTimeline())
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 160, Height: 40})

	m, _ = updateModel(m, key("j"))
	output := m.View()
	assert.Contains(t, output, "burn-check: FRAME 1")
	assert.Contains(t, output, "watch active → dummy")
	assert.Contains(t, output, "● watch Health 200 → 120")
	assert.NotContains(t, output, "Corrections:")

	m, _ = updateModel(m, key("n"))
	output = m.View()
	assert.Contains(t, output, "burn-check: FRAME 3")
	assert.Contains(t, output, "↺ arrived at frame 5: rewound, replayed 2 frame(s)")

	m, _ = updateModel(m, key("n"))
	assert.Contains(t, m.View(), "90 (replayed)")
}

func TestView_EmptyTimeline(t *testing.T) {
	t.Parallel()

	m := tui.NewModel(&domain.Timeline{Scenario: "empty"})
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Contains(t, m.View(), "No frames recorded.")
}
