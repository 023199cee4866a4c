package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rewind/internal/ui/style"
)

// View renders the frame list next to the selected frame's details.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.frameList(), m.detailPane()),
		helpStyle.Render(helpText),
	)
}

func (m *Model) frameList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("FRAMES") + "\n\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Frames))
	start := min(m.ListOffset, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderFrameRow(i, m.Frames[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderFrameRow(index int, node *FrameNode) string {
	icon, rowStyle := "○", frameQuietStyle
	switch {
	case node.Rewound():
		icon, rowStyle = style.Rewind, frameRewoundStyle
	case len(node.Triggers) > 0:
		icon, rowStyle = style.Dot, frameTriggerStyle
	}

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
	}

	return cursor + rowStyle.Render(fmt.Sprintf("%s frame %d", icon, node.Frame))
}

func (m *Model) detailPane() string {
	node := m.Selected()
	if node == nil {
		return detailStyle.Render(titleStyle.Render(m.Scenario) + "\n\nNo frames recorded.")
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("%s: FRAME %d", m.Scenario, node.Frame)), "", "Tasks:"}
	for _, id := range slices.Sorted(maps.Keys(node.Tasks)) {
		state := node.Tasks[id]
		status := inactiveStyle.Render("inactive")
		if state.Active {
			status = activeStyle.Render("active")
		}
		line := fmt.Sprintf("  %s %s", id, status)
		if !state.ExternalTarget.IsZero() {
			line += fmt.Sprintf(" %s %s", style.Arrow, state.ExternalTarget)
		}
		lines = append(lines, line)
	}

	if len(node.Triggers) > 0 {
		lines = append(lines, "", "Triggers:")
		for _, t := range node.Triggers {
			line := fmt.Sprintf("  %s %s %s %g %s %g", style.Dot, t.Task, t.Attribute, t.OldValue, style.Arrow, t.NewValue)
			if t.Replayed {
				line += " (replayed)"
			}
			lines = append(lines, line)
		}
	}

	if len(node.Rollbacks) > 0 {
		lines = append(lines, "", "Corrections:")
		for _, r := range node.Rollbacks {
			outcome := "prediction confirmed"
			if r.Resimmed {
				outcome = fmt.Sprintf("rewound, replayed %d frame(s)", r.Replayed)
			}
			lines = append(lines, fmt.Sprintf("  %s arrived at frame %d: %s", style.Rewind, r.At, outcome))
		}
	}

	pane := detailStyle
	if m.DetailWidth > 0 {
		pane = pane.Width(m.DetailWidth)
	}
	return pane.Render(strings.Join(lines, "\n"))
}
