package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"inquisitive/config"
	appmodel "inquisitive/model"
	"inquisitive/provider/testutil"
)

func newTestView(t *testing.T, p appmodel.Provider) AppView {
	t.Helper()
	bar := NewNotificationBar()
	dm := appmodel.NewModel(&config.Config{}, p, bar, "test")
	view := NewAppView(dm, bar)
	return update(t, view, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(t *testing.T, a AppView, msg tea.Msg) AppView {
	t.Helper()
	next, _ := a.Update(msg)
	view, ok := next.(AppView)
	if !ok {
		t.Fatalf("Update returned %T, want AppView", next)
	}
	return view
}

// collect runs cmd and any batched commands, returning every message
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func completionFrom(t *testing.T, msgs []tea.Msg) appmodel.CompletionResultMsg {
	t.Helper()
	for _, m := range msgs {
		if result, ok := m.(appmodel.CompletionResultMsg); ok {
			return result
		}
	}
	t.Fatal("no CompletionResultMsg produced")
	return appmodel.CompletionResultMsg{}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func submitText(t *testing.T, a AppView, text string) (AppView, tea.Cmd) {
	t.Helper()
	a.textarea.SetValue(text)
	next, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(AppView), cmd
}

func TestEnterSubmitsAndResolves(t *testing.T) {
	mock := testutil.NewReplyProvider("Hi there")
	a := newTestView(t, mock)

	a, cmd := submitText(t, a, "Hello")
	if cmd == nil {
		t.Fatal("expected commands after submit")
	}
	if !a.dataModel.Session.Thinking() {
		t.Error("session should be thinking after submit")
	}
	if a.textarea.Value() != "" {
		t.Errorf("textarea should be reset, got %q", a.textarea.Value())
	}
	if !strings.Contains(a.View(), "Thinking") {
		t.Error("view should show the thinking indicator")
	}

	msgs := collect(cmd)
	a = update(t, a, completionFrom(t, msgs))

	if a.dataModel.Session.Thinking() {
		t.Error("session should be idle after the reply")
	}
	got := a.dataModel.Session.Snapshot()
	if len(got) != 2 || got[0].Content != "Hello" || got[1].Content != "Hi there" {
		t.Fatalf("conversation = %+v", got)
	}

	calls := mock.Calls()
	if len(calls) != 1 || len(calls[0]) != 2 {
		t.Fatalf("expected one call with 2 messages, got %v", calls)
	}
	if calls[0][0].Role != appmodel.RoleSystem || calls[0][1].Content != "Hello" {
		t.Errorf("outbound = %+v", calls[0])
	}
}

func TestEmptyInputIgnored(t *testing.T) {
	mock := testutil.NewReplyProvider("unused")
	a := newTestView(t, mock)

	a, cmd := submitText(t, a, "   \n\t")
	if cmd != nil {
		t.Error("blank input should produce no command")
	}
	if a.dataModel.Session.Len() != 0 || a.dataModel.Session.Thinking() {
		t.Error("blank input should not start a turn")
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times", mock.CallCount())
	}
}

func TestEnterWhilePendingKeepsInput(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	a, _ = submitText(t, a, "first")
	a, cmd := submitText(t, a, "second")

	if cmd != nil {
		t.Error("second submit should be ignored while pending")
	}
	if a.textarea.Value() != "second" {
		t.Errorf("pending input should be kept, got %q", a.textarea.Value())
	}
	if a.dataModel.Session.Len() != 1 {
		t.Errorf("expected only the first message, got %d", a.dataModel.Session.Len())
	}
}

func TestFailureShowsNotification(t *testing.T) {
	mock := testutil.NewFailingProvider(errors.New("boom"))
	a := newTestView(t, mock)

	a, cmd := submitText(t, a, "Hello")
	a = update(t, a, completionFrom(t, collect(cmd)))

	if a.dataModel.Session.Thinking() {
		t.Error("session should return to idle after a failure")
	}
	if a.dataModel.Session.Len() != 1 {
		t.Errorf("failed turn should append nothing, got %d messages", a.dataModel.Session.Len())
	}

	n, ok := a.bar.Current()
	if !ok || n.Kind != appmodel.NotificationError || n.Title != "Error" {
		t.Fatalf("notification = %+v, %v", n, ok)
	}
	if n.Description != "Failed to get a response. Please try again." {
		t.Errorf("description = %q", n.Description)
	}

	a = update(t, a, appmodel.NotificationExpiredMsg{Seq: 1})
	if _, ok := a.bar.Current(); ok {
		t.Error("notification should be dismissed")
	}
}

func TestClearWhilePendingDropsReply(t *testing.T) {
	mock := testutil.NewReplyProvider("late reply")
	a := newTestView(t, mock)

	a, cmd := submitText(t, a, "Hello")
	a = update(t, a, altKey('l'))

	if a.dataModel.Session.Len() != 0 || a.dataModel.Session.Thinking() {
		t.Fatal("clear should empty the conversation and return to idle")
	}
	n, ok := a.bar.Current()
	if !ok || n.Title != "Chat cleared" {
		t.Fatalf("notification = %+v, %v", n, ok)
	}

	msgs := collect(cmd)
	a = update(t, a, completionFrom(t, msgs))
	for _, m := range msgs {
		if rendered, ok := m.(appmodel.MarkdownRenderedMsg); ok {
			a = update(t, a, rendered)
		}
	}

	if a.dataModel.Session.Len() != 0 {
		t.Errorf("stale reply was appended: %+v", a.dataModel.Session.Snapshot())
	}
	if len(a.rendered) != 0 {
		t.Errorf("stale markdown was cached: %v", a.rendered)
	}
	if n, _ := a.bar.Current(); n.Title != "Chat cleared" {
		t.Errorf("stale reply should not notify, bar shows %q", n.Title)
	}
}

func TestClearOnEmptyConversation(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	next, cmd := a.Update(altKey('l'))
	a = next.(AppView)

	if cmd == nil {
		t.Error("expected a dismissal timer for the notification")
	}
	if n, ok := a.bar.Current(); !ok || n.Kind != appmodel.NotificationSuccess {
		t.Errorf("notification = %+v, %v", n, ok)
	}
}

func TestHighlightFlash(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	a, _ = submitText(t, a, "Hello")
	if !strings.Contains(a.viewport.View(), ">>> ") {
		t.Error("new message should be flagged")
	}

	a = update(t, a, appmodel.HighlightExpiredMsg{Index: 0})
	if _, ok := a.dataModel.Session.Highlight(); ok {
		t.Error("highlight should be cleared")
	}
	if strings.Contains(a.viewport.View(), ">>> ") {
		t.Error("flag should be gone after expiry")
	}
}

func TestMarkdownRenderedCached(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))
	a, _ = submitText(t, a, "Hello")

	a = update(t, a, appmodel.MarkdownRenderedMsg{
		Epoch:        a.dataModel.Session.Epoch(),
		MessageIndex: 0,
		Rendered:     "RENDERED-HELLO",
	})
	if a.rendered[0] != "RENDERED-HELLO" {
		t.Fatalf("cache = %v", a.rendered)
	}
	if !strings.Contains(a.viewport.View(), "RENDERED-HELLO") {
		t.Error("viewport should show the rendered body")
	}

	// Out of range indexes are ignored
	a = update(t, a, appmodel.MarkdownRenderedMsg{Epoch: a.dataModel.Session.Epoch(), MessageIndex: 5})
	if _, ok := a.rendered[5]; ok {
		t.Error("out of range index cached")
	}
}

func TestCopyWithoutReply(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	a = update(t, a, altKey('y'))
	if n, ok := a.bar.Current(); !ok || n.Title != "Nothing to copy" {
		t.Errorf("notification = %+v, %v", n, ok)
	}
}

func TestClipboardResultNotifies(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	a = update(t, a, appmodel.ClipboardCopiedMsg{})
	if n, _ := a.bar.Current(); n.Title != "Copied" {
		t.Errorf("success title = %q", n.Title)
	}

	a = update(t, a, appmodel.ClipboardCopiedMsg{Err: errors.New("no display")})
	if n, _ := a.bar.Current(); n.Kind != appmodel.NotificationError {
		t.Errorf("failure kind = %v", n.Kind)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{altKey('q'), {Type: tea.KeyCtrlC}} {
		a := newTestView(t, testutil.NewReplyProvider("ok"))
		next, cmd := a.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
		if !next.(AppView).dataModel.Quitting {
			t.Errorf("%s: Quitting not set", msg)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	a = update(t, a, altKey('h'))
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help should be visible")
	}

	// Enter is swallowed while help is open
	a, _ = submitText(t, a, "Hello")
	if a.dataModel.Session.Len() != 0 {
		t.Error("submit should be ignored while help is open")
	}

	a = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.showHelp {
		t.Error("esc should close help")
	}
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	_, cmd := a.Update(a.loadingSpinner.Tick())
	if cmd != nil {
		t.Error("spinner tick should be dropped while idle")
	}
}

func countTicks(msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(spinner.TickMsg); ok {
			n++
		}
	}
	return n
}

func TestSpinnerSingleTickChain(t *testing.T) {
	a := newTestView(t, testutil.NewReplyProvider("ok"))

	a, cmd := submitText(t, a, "first")
	msgs := collect(cmd)
	if countTicks(msgs) != 1 {
		t.Fatalf("first submit should start one tick chain, got %d", countTicks(msgs))
	}
	// Reply lands before the queued tick is delivered
	a = update(t, a, completionFrom(t, msgs))

	a, cmd = submitText(t, a, "second")
	msgs = collect(cmd)
	if n := countTicks(msgs); n != 0 {
		t.Errorf("second submit started %d extra tick chains", n)
	}
	if !a.ticking {
		t.Error("tick chain should still be marked live")
	}

	// Once idle the chain ends and the next submit starts a fresh one
	a = update(t, a, completionFrom(t, msgs))
	a = update(t, a, a.loadingSpinner.Tick())
	if a.ticking {
		t.Error("idle tick should end the chain")
	}
	_, cmd = submitText(t, a, "third")
	if n := countTicks(collect(cmd)); n != 1 {
		t.Errorf("third submit should restart the chain, got %d ticks", n)
	}
}

func TestViewShowsConversation(t *testing.T) {
	mock := testutil.NewReplyProvider("Hi there")
	a := newTestView(t, mock)

	if !strings.Contains(a.View(), "No messages yet.") {
		t.Error("empty conversation placeholder missing")
	}

	turn, err := a.dataModel.Session.Submit(context.Background(), "Hello")
	if err != nil {
		t.Fatal(err)
	}
	a = update(t, a, appmodel.CompletionResultMsg{Turn: turn, Reply: "Hi there"})

	view := a.View()
	for _, want := range []string{"Inquisitive AI", "mock/mock-model", "Hello", "Hi there", "Enter"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
