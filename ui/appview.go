package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appmodel "inquisitive/model"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model
	bar       *NotificationBar

	// UI Components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model
	ticking        bool // a spinner tick chain is live

	// Window state
	width  int
	height int
	ready  bool

	showHelp bool

	// Markdown cache for the current conversation, keyed by message index.
	// renderEpoch is the session epoch the cache belongs to.
	rendered    map[int]string
	renderEpoch uint64
}

// NewAppView builds the chat view. bar must be the sink the session in
// dataModel notifies.
func NewAppView(dataModel *appmodel.Model, bar *NotificationBar) AppView {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone submits (handled in Update)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // Bright white

	return AppView{
		dataModel:      dataModel,
		bar:            bar,
		textarea:       ta,
		viewport:       viewport.New(0, 0),
		loadingSpinner: sp,
		rendered:       make(map[int]string),
		renderEpoch:    dataModel.Session.Epoch(),
	}
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading Inquisitive AI..."
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	// Title bar - "Inquisitive AI - provider/model - Thinking"
	appText := assistantLabel
	modelText := TitleStyle.Render(fmt.Sprintf(" - %s/%s", a.dataModel.Provider.Name(), a.dataModel.Provider.GetModel()))
	title := appText + modelText
	if a.dataModel.Session.Thinking() {
		title += ThinkingStyle.Render(" - Thinking " + a.loadingSpinner.View())
	}

	statusBar := renderHints(chatHints)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		a.bar.View(a.width),
		a.viewport.View(),
		a.textarea.View(),
		statusBar,
	)
}
