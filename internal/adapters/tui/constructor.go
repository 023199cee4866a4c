// Package tui provides an interactive terminal browser for recorded timelines.
package tui

import (
	"go.trai.ch/rewind/internal/core/domain"
)

// NewModel creates a browser model for timeline. Frames are listed in order and
// each one collects the triggers it broadcast and the corrections that targeted it.
func NewModel(timeline *domain.Timeline) *Model {
	m := &Model{
		Scenario: timeline.Scenario,
		Frames:   make([]*FrameNode, 0, len(timeline.Frames)),
	}

	byFrame := make(map[int]*FrameNode, len(timeline.Frames))
	for _, state := range timeline.Frames {
		node := &FrameNode{Frame: state.Frame, Tasks: state.Tasks}
		m.Frames = append(m.Frames, node)
		byFrame[state.Frame] = node
	}

	for _, trigger := range timeline.Triggers {
		if node, ok := byFrame[trigger.Frame]; ok {
			node.Triggers = append(node.Triggers, trigger)
		}
	}
	for _, record := range timeline.Rollbacks {
		if node, ok := byFrame[record.Frame]; ok {
			node.Rollbacks = append(node.Rollbacks, record)
		}
	}

	return m
}
