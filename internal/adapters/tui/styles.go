package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rewind/internal/ui/style"
)

const helpText = "j/k move  n/p next/prev event  g/G first/last  q quit"

var (
	frameQuietStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	frameTriggerStyle = lipgloss.NewStyle().
				Foreground(style.Iris)

	frameRewoundStyle = lipgloss.NewStyle().
				Foreground(style.Yellow).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	listStyle = lipgloss.NewStyle().
			PaddingRight(2)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(style.Slate).
			PaddingLeft(1)
)
