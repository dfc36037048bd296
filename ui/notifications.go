package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"inquisitive/config"
	"inquisitive/model"
)

// NotificationBar is the TUI's notification sink. It shows the latest
// notification on one line until it expires or is replaced. It is only
// touched from the Bubble Tea update loop.
type NotificationBar struct {
	current   *model.Notification
	seq       int
	scheduled int
}

func NewNotificationBar() *NotificationBar {
	return &NotificationBar{}
}

func (b *NotificationBar) Notify(n model.Notification) {
	b.seq++
	b.current = &n
	if config.DebugLog != nil {
		config.DebugLog.Printf("[NotificationBar] #%d %s: %s", b.seq, n.Kind, n.Title)
	}
}

// Current returns the notification on display, if any.
func (b *NotificationBar) Current() (model.Notification, bool) {
	if b.current == nil {
		return model.Notification{}, false
	}
	return *b.current, true
}

// Dismiss hides notification seq. A newer notification stays up.
func (b *NotificationBar) Dismiss(seq int) bool {
	if b.current == nil || seq != b.seq {
		return false
	}
	b.current = nil
	return true
}

// expiry returns the dismissal timer for a notification raised since the
// last call, or nil.
func (b *NotificationBar) expiry() tea.Cmd {
	if b.current == nil || b.seq == b.scheduled {
		return nil
	}
	b.scheduled = b.seq
	return model.ExpireNotification(b.seq)
}

// View renders the bar to exactly one line no wider than width.
func (b *NotificationBar) View(width int) string {
	n, ok := b.Current()
	if !ok || width <= 0 {
		return ""
	}

	icon, style := NotificationStyle(n.Kind)

	title := icon + " " + n.Title
	titleWidth := runewidth.StringWidth(title)
	if titleWidth >= width {
		return style.Render(runewidth.Truncate(title, width, "..."))
	}

	desc := ""
	if n.Description != "" {
		desc = runewidth.Truncate("  "+n.Description, width-titleWidth, "...")
	}
	return style.Render(title) + DimStyle.Render(desc)
}
