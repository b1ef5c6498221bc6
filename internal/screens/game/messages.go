package game

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// countdownTickMsg advances the pre-round countdown.
type countdownTickMsg time.Time

// itemTimerMsg is sent every second while an item is on screen. Epoch
// identifies the item it was scheduled for so stale ticks are dropped.
type itemTimerMsg struct {
	Epoch int
}

func countdownCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

func itemTimerCmd(epoch int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return itemTimerMsg{Epoch: epoch}
	})
}
