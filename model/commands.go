package model

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inquisitive/config"
)

const (
	HighlightDuration    = 500 * time.Millisecond
	NotificationDuration = 3 * time.Second
)

// CompleteTurn runs the provider call for turn off the UI goroutine.
func CompleteTurn(client Provider, turn Turn) tea.Cmd {
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] CompleteTurn: epoch=%d messages=%d", turn.Epoch, len(turn.Messages))
		}
		reply, err := client.Complete(turn.Context(), turn.Messages)
		return CompletionResultMsg{Turn: turn, Reply: reply, Err: err}
	}
}

// ExpireHighlight schedules the end of the new-message flash for idx.
func ExpireHighlight(idx int) tea.Cmd {
	return tea.Tick(HighlightDuration, func(time.Time) tea.Msg {
		return HighlightExpiredMsg{Index: idx}
	})
}

// ExpireNotification schedules dismissal of the notification numbered seq.
func ExpireNotification(seq int) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{Seq: seq}
	})
}
