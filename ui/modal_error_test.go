package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestErrorModal(t *testing.T) {
	m := NewErrorModal("Configuration Error", errors.New("no API key for openai"))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(ErrorModal)

	view := m.View()
	for _, want := range []string{"Configuration Error", "no API key for openai", "inquisitive config", "Press Enter to quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestErrorModalQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}, Alt: true},
	} {
		t.Run(key.String(), func(t *testing.T) {
			_, cmd := NewErrorModal("Oops", errors.New("bad")).Update(key)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})
	}

	_, cmd := NewErrorModal("Oops", errors.New("bad")).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Error("other keys should not quit")
	}
}

func TestErrorModalSmallTerminal(t *testing.T) {
	m := NewErrorModal("Oops", errors.New("bad"))
	if got := m.View(); got != "Oops: bad" {
		t.Errorf("View() = %q", got)
	}
}
