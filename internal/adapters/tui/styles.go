package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/crxbuild/internal/ui/style"
)

var (
	idleStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	buildingStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)
)
