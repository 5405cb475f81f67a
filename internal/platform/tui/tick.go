// Package tui provides the Bubble Tea host for tilegen.
// It runs the watch loop, maps keys to host actions, and renders the grid.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one generation step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after one interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
