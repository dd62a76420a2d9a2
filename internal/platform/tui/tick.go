// Package tui runs games in the terminal with Bubble Tea: the fixed-rate
// tick loop, key mapping, the mode menu, the run scoreboard and the SSH
// server that hands each connection its own session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickRate bounds --fps; faster ticks only burn CPU in a terminal.
const maxTickRate = 240

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval converts a tick rate into the delay between ticks.
// Non-positive rates fall back to 60 per second.
func tickInterval(tickRate int) time.Duration {
	switch {
	case tickRate <= 0:
		tickRate = 60
	case tickRate > maxTickRate:
		tickRate = maxTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next simulation tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
