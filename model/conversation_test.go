package model

import "testing"

func TestConversationAppendAndSnapshot(t *testing.T) {
	c := NewConversation()

	if _, ok := c.Highlight(); ok {
		t.Fatal("new conversation should have no highlight")
	}

	idx := c.Append(NewMessage(RoleUser, "one"))
	if idx != 0 {
		t.Errorf("first Append index = %d, want 0", idx)
	}
	c.Append(NewMessage(RoleAssistant, "two"))

	snap := c.Snapshot()
	if len(snap) != 2 || snap[0].Content != "one" || snap[1].Content != "two" {
		t.Fatalf("Snapshot() = %+v", snap)
	}

	// Mutating the snapshot must not reach the store
	snap[0].Content = "changed"
	if c.Snapshot()[0].Content != "one" {
		t.Error("snapshot aliases the conversation")
	}
}

func TestConversationHighlight(t *testing.T) {
	c := NewConversation()
	c.Append(NewMessage(RoleUser, "a"))
	c.Append(NewMessage(RoleAssistant, "b"))

	idx, ok := c.Highlight()
	if !ok || idx != 1 {
		t.Fatalf("Highlight() = %d, %v; want 1, true", idx, ok)
	}

	if c.ExpireHighlight(0) {
		t.Error("expiring an older index must not clear the newer highlight")
	}
	if _, ok := c.Highlight(); !ok {
		t.Error("highlight should survive a stale expiry")
	}

	if !c.ExpireHighlight(1) {
		t.Error("expiring the current index should succeed")
	}
	if _, ok := c.Highlight(); ok {
		t.Error("highlight should be cleared")
	}
}

func TestConversationClear(t *testing.T) {
	c := NewConversation()
	for i := 0; i < 5; i++ {
		c.Append(NewMessage(RoleUser, "m"))
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if _, ok := c.Highlight(); ok {
		t.Error("Clear should drop the highlight")
	}
	if c.ExpireHighlight(4) {
		t.Error("expiry after clear should be a no-op")
	}
}

func TestSequencerTransitions(t *testing.T) {
	var s Sequencer

	if s.State() != StateIdle {
		t.Fatalf("zero Sequencer state = %v", s.State())
	}

	epoch, err := s.Begin()
	if err != nil {
		t.Fatalf("Begin() error: %v", err)
	}
	if _, err := s.Begin(); err != ErrRequestPending {
		t.Errorf("second Begin() error = %v, want ErrRequestPending", err)
	}
	if !s.Finish(epoch) {
		t.Error("Finish(current) should succeed")
	}
	if s.State() != StateIdle {
		t.Error("state should be idle after Finish")
	}
	if s.Finish(epoch) {
		t.Error("Finish while idle should report false")
	}

	epoch, _ = s.Begin()
	s.Reset()
	if s.State() != StateIdle {
		t.Error("Reset should return to idle")
	}
	if s.Finish(epoch) {
		t.Error("Finish with pre-reset epoch should be stale")
	}
}

func TestBuildOutbound(t *testing.T) {
	history := []Message{
		NewMessage(RoleUser, "q1"),
		NewMessage(RoleAssistant, "a1"),
	}

	got := BuildOutbound("preamble", history, "q2")

	want := []Message{
		{Role: RoleSystem, Content: "preamble"},
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Role != want[i].Role || got[i].Content != want[i].Content {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name    string
		msgs    []Message
		wantErr bool
	}{
		{"empty", nil, true},
		{"valid", []Message{{Role: RoleSystem}, {Role: RoleUser}}, false},
		{"bad role", []Message{{Role: "tool"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessages(tt.msgs)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMessages() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompletionErrorFormat(t *testing.T) {
	tests := []struct {
		err  *CompletionError
		want string
	}{
		{&CompletionError{Kind: FailureProvider, StatusCode: 429, Message: "rate limited"}, "API Error: 429 - rate limited"},
		{&CompletionError{Kind: FailureProvider, StatusCode: 500}, "API Error: 500 - Unknown error"},
		{&CompletionError{Kind: FailureMalformed, Message: "no choices"}, "malformed response: no choices"},
		{&CompletionError{Kind: FailureTransport}, "transport error"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
