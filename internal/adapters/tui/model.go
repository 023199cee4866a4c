package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rewind/internal/core/domain"
)

const (
	frameListWidthRatio = 0.3
	detailBorderWidth   = 4
)

// FrameNode is one frame in the browser list.
type FrameNode struct {
	Frame     int
	Tasks     map[domain.TaskID]domain.SyncedTaskState
	Triggers  []domain.Trigger
	Rollbacks []domain.RollbackRecord
}

// Rewound reports whether a correction for this frame forced a resimulation.
func (n *FrameNode) Rewound() bool {
	for _, r := range n.Rollbacks {
		if r.Resimmed {
			return true
		}
	}
	return false
}

// Eventful reports whether anything besides task state happened at this frame.
func (n *FrameNode) Eventful() bool {
	return len(n.Triggers) > 0 || len(n.Rollbacks) > 0
}

// Model is the browser state.
type Model struct {
	Scenario     string
	Frames       []*FrameNode
	SelectedIdx  int
	ListOffset   int
	ListHeight   int
	DetailWidth  int
	DetailHeight int
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

// Selected returns the highlighted frame, or nil for an empty timeline.
func (m *Model) Selected() *FrameNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Frames) {
		return m.Frames[m.SelectedIdx]
	}
	return nil
}

func (m *Model) selectIndex(i int) {
	m.SelectedIdx = max(0, min(i, len(m.Frames)-1))
	m.ensureVisible()
}

// seekEvent moves the selection to the nearest eventful frame in direction step.
func (m *Model) seekEvent(step int) {
	for i := m.SelectedIdx + step; i >= 0 && i < len(m.Frames); i += step {
		if m.Frames[i].Eventful() {
			m.selectIndex(i)
			return
		}
	}
}

// Update handles key presses and window resizes.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Fast typing arrives as one message carrying several runes.
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
			for _, r := range msg.Runes {
				if cmd := m.handleKey(string(r)); cmd != nil {
					return m, cmd
				}
			}
			return m, nil
		}
		return m, m.handleKey(msg.String())

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * frameListWidthRatio)
		m.DetailWidth = msg.Width - listWidth - detailBorderWidth
		m.DetailHeight = msg.Height - lipgloss.Height(titleStyle.Render("FRAME"))

		header := titleStyle.Render("FRAMES") + "\n\n"
		m.ListHeight = max(1, msg.Height-lipgloss.Height(header)-lipgloss.Height(helpStyle.Render(helpText)))
		m.ensureVisible()
	}

	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "k", "up":
		m.selectIndex(m.SelectedIdx - 1)
	case "j", "down":
		m.selectIndex(m.SelectedIdx + 1)
	case "g", "home":
		m.selectIndex(0)
	case "G", "end":
		m.selectIndex(len(m.Frames) - 1)
	case "n":
		m.seekEvent(1)
	case "p":
		m.seekEvent(-1)
	}
	return nil
}
