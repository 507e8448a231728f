// Package tui provides the Bubble Tea viewers for tilesynth: a step-by-step
// generation viewer, a map picker, a run history browser, and an SSH server
// hosting them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the viewer with the matching ID.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var lastViewerID atomic.Int64

// nextViewerID returns a process-unique id so ticks of a discarded viewer
// are not picked up by its replacement.
func nextViewerID() int64 {
	return lastViewerID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
