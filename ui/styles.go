package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	appmodel "inquisitive/model"
)

// ANSI palette, so the UI follows the terminal's own theme.
var (
	dimColor       = lipgloss.Color("7")
	accentColor    = lipgloss.Color("12")
	successColor   = lipgloss.Color("10")
	warningColor   = lipgloss.Color("11")
	dangerColor    = lipgloss.Color("9")
	highlightColor = lipgloss.Color("13")
	borderColor    = lipgloss.Color("8")
)

var (
	DimStyle       = lipgloss.NewStyle().Foreground(dimColor)
	TitleStyle     = lipgloss.NewStyle().Bold(true)
	ThinkingStyle  = lipgloss.NewStyle().Foreground(warningColor)
	HighlightStyle = lipgloss.NewStyle().Foreground(highlightColor).Bold(true)

	userLabel      = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render("You")
	assistantLabel = lipgloss.NewStyle().Foreground(accentColor).Render(assistantName)
)

const assistantName = "Inquisitive AI"

// roleLabel is the speaker name shown above a message.
func roleLabel(role string) string {
	if role == appmodel.RoleUser {
		return userLabel
	}
	return assistantLabel
}

// NotificationStyle returns the icon and title style for a notification
// kind. The CLI uses it too so both surfaces look alike.
func NotificationStyle(kind appmodel.NotificationKind) (string, lipgloss.Style) {
	if kind == appmodel.NotificationError {
		return "✗", lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	}
	return "✓", lipgloss.NewStyle().Foreground(successColor).Bold(true)
}

// keyHint is one "key action" pair in the status footer.
type keyHint struct {
	key, action string
}

var chatHints = []keyHint{
	{"Alt+Q", "Quit"},
	{"Alt+L", "Clear"},
	{"Alt+Enter", "New Line"},
	{"Enter", "Send"},
	{"Alt+Y", "Copy"},
	{"Alt+H", "Help"},
}

// renderHints lays hints out on one line, actions in green.
func renderHints(hints []keyHint) string {
	action := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.key + " " + action.Render(h.action)
	}
	return DimStyle.Render(strings.Join(parts, "  "))
}
