package ui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"inquisitive/config"
	appmodel "inquisitive/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		widthChanged := a.ready && msg.Width != a.width
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), notification bar (1 line), textarea (3 lines), and status bar (1 line)
		viewportHeight := a.height - 6
		if viewportHeight < 0 {
			viewportHeight = 0
		}
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)

		if widthChanged {
			return a, a.rerenderAll()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		// Dropping the tick once idle stops the animation loop
		if !a.dataModel.Session.Thinking() {
			a.ticking = false
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(true)
		return a, cmd

	case appmodel.CompletionResultMsg:
		return a.handleCompletion(msg)

	case appmodel.MarkdownRenderedMsg:
		if msg.Epoch != a.dataModel.Session.Epoch() {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Dropping markdown for message %d from cleared conversation", msg.MessageIndex)
			}
			return a, nil
		}
		if msg.MessageIndex >= 0 && msg.MessageIndex < a.dataModel.Session.Len() {
			a.rendered[msg.MessageIndex] = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil

	case appmodel.HighlightExpiredMsg:
		if a.dataModel.Session.ExpireHighlight(msg.Index) {
			a.updateViewportContent(false)
		}
		return a, nil

	case appmodel.NotificationExpiredMsg:
		a.bar.Dismiss(msg.Seq)
		return a, nil

	case appmodel.ClipboardCopiedMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Clipboard write failed: %v", msg.Err)
			}
			a.bar.Notify(appmodel.Notification{
				Kind:        appmodel.NotificationError,
				Title:       "Copy failed",
				Description: "The clipboard is not available.",
			})
		} else {
			a.bar.Notify(appmodel.Notification{
				Kind:        appmodel.NotificationSuccess,
				Title:       "Copied",
				Description: "Last response copied to clipboard.",
			})
		}
		return a, a.bar.expiry()
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		switch msg.String() {
		case "alt+q", "ctrl+c":
			return a.quit()
		case "alt+h", "esc":
			a.showHelp = false
		}
		return a, nil
	}

	switch msg.String() {
	case "alt+q", "ctrl+c":
		return a.quit()

	case "alt+h":
		a.showHelp = true
		return a, nil

	case "enter":
		// Don't pass Enter to textarea
		return a.submit()

	case "alt+l":
		return a.clear()

	case "alt+y":
		reply, ok := a.dataModel.Session.LastReply()
		if !ok {
			a.bar.Notify(appmodel.Notification{
				Kind:        appmodel.NotificationError,
				Title:       "Nothing to copy",
				Description: "No response yet.",
			})
			return a, a.bar.expiry()
		}
		return a, copyToClipboard(reply.Content)

	case "alt+j", "alt+down":
		a.viewport.HalfPageDown()
		return a, nil

	case "alt+k", "alt+up":
		a.viewport.HalfPageUp()
		return a, nil

	case "pgdown":
		a.viewport.PageDown()
		return a, nil

	case "pgup":
		a.viewport.PageUp()
		return a, nil

	case "alt+g":
		a.viewport.GotoTop()
		return a, nil

	case "alt+G":
		a.viewport.GotoBottom()
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) quit() (tea.Model, tea.Cmd) {
	if config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Quit requested")
	}
	a.dataModel.Quitting = true
	return a, tea.Quit
}

func (a AppView) submit() (tea.Model, tea.Cmd) {
	session := a.dataModel.Session
	text := a.textarea.Value()

	turn, err := session.Submit(context.Background(), text)
	switch {
	case errors.Is(err, appmodel.ErrEmptyInput):
		return a, nil
	case errors.Is(err, appmodel.ErrRequestPending):
		// Input is kept; it can be sent once the reply lands
		return a, nil
	case err != nil:
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Submit failed: %v", err)
		}
		return a, nil
	}

	a.textarea.Reset()
	userIdx := session.Len() - 1
	a.updateViewportContent(true)

	cmds := []tea.Cmd{
		a.renderMarkdownAsync(userIdx, text),
		appmodel.CompleteTurn(session.Client(), turn),
		appmodel.ExpireHighlight(userIdx),
	}
	if !a.ticking {
		a.ticking = true
		cmds = append(cmds, a.loadingSpinner.Tick)
	}
	return a, tea.Batch(cmds...)
}

func (a AppView) handleCompletion(msg appmodel.CompletionResultMsg) (tea.Model, tea.Cmd) {
	session := a.dataModel.Session

	if !session.Resolve(msg.Turn, msg.Reply, msg.Err) {
		// Reply to a conversation that was cleared while it was in flight
		return a, nil
	}

	var cmds []tea.Cmd
	if msg.Err == nil {
		idx := session.Len() - 1
		cmds = append(cmds,
			a.renderMarkdownAsync(idx, msg.Reply),
			appmodel.ExpireHighlight(idx),
		)
	}

	a.updateViewportContent(true)
	cmds = append(cmds, a.bar.expiry())
	return a, tea.Batch(cmds...)
}

func (a AppView) clear() (tea.Model, tea.Cmd) {
	a.dataModel.Session.Clear()
	a.rendered = make(map[int]string)
	a.renderEpoch = a.dataModel.Session.Epoch()
	a.updateViewportContent(true)
	return a, a.bar.expiry()
}

// rerenderAll re-renders every cached message at the current width.
func (a AppView) rerenderAll() tea.Cmd {
	var cmds []tea.Cmd
	for i, msg := range a.dataModel.Session.Snapshot() {
		cmds = append(cmds, a.renderMarkdownAsync(i, msg.Content))
	}
	return tea.Batch(cmds...)
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return appmodel.ClipboardCopiedMsg{Err: clipboard.WriteAll(text)}
	}
}
