package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrorModal is a standalone program shown when startup fails before the
// chat view can be built (bad config, missing API key).
type ErrorModal struct {
	title  string
	cause  error
	width  int
	height int
}

func NewErrorModal(title string, cause error) ErrorModal {
	return ErrorModal{title: title, cause: cause}
}

func (m ErrorModal) Init() tea.Cmd {
	return nil
}

func (m ErrorModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "ctrl+c", "alt+q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ErrorModal) View() string {
	if m.width < 20 || m.height < 10 {
		return m.title + ": " + m.cause.Error()
	}

	boxWidth := min(64, m.width-4)
	body := lipgloss.NewStyle().Width(boxWidth - 6).Align(lipgloss.Center)

	return renderModal(m.width, m.height, boxWidth, dangerColor,
		lipgloss.NewStyle().Bold(true).Foreground(dangerColor).Render(m.title),
		body.Render(m.cause.Error()),
		DimStyle.Render(`Run "inquisitive config" to check your settings.`),
		DimStyle.Render("Press Enter to quit"),
	)
}

// renderModal centers sections in a rounded box, one blank line apart.
func renderModal(width, height, boxWidth int, border lipgloss.TerminalColor, sections ...string) string {
	spaced := make([]string, 0, 2*len(sections))
	for i, s := range sections {
		if i > 0 {
			spaced = append(spaced, "")
		}
		spaced = append(spaced, s)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		box.Render(lipgloss.JoinVertical(lipgloss.Center, spaced...)))
}
