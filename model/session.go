package model

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"inquisitive/config"
)

// Session owns one conversation, its request sequencer, the model client
// and the notification sink. Its methods are safe for concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	conv     *Conversation
	seq      Sequencer
	cancel   context.CancelFunc
	preamble string
	client   Provider
	sink     NotificationSink
}

// NewSession creates an idle session with an empty conversation. A nil sink
// discards notifications.
func NewSession(client Provider, preamble string, sink NotificationSink) *Session {
	if sink == nil {
		sink = NotificationSinkFunc(func(Notification) {})
	}
	return &Session{
		ID:       uuid.New().String(),
		conv:     NewConversation(),
		preamble: preamble,
		client:   client,
		sink:     sink,
	}
}

// Client returns the model client the session sends turns to.
func (s *Session) Client() Provider {
	return s.client
}

// Submit starts a turn for text. On success the user message is already in
// the history and the session is Pending until the returned Turn resolves.
func (s *Session) Submit(ctx context.Context, text string) (Turn, error) {
	if isBlank(text) {
		return Turn{}, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	epoch, err := s.seq.Begin()
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session %s] Submit rejected: %v", s.ID, err)
		}
		return Turn{}, err
	}

	outbound := BuildOutbound(s.preamble, s.conv.messages, text)
	s.conv.Append(NewMessage(RoleUser, text))

	turnCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Session %s] Submit: epoch=%d outbound=%d", s.ID, epoch, len(outbound))
	}

	return Turn{Epoch: epoch, Messages: outbound, ctx: turnCtx}, nil
}

// Resolve finishes turn with the provider's reply or error. It reports
// false when the turn is stale (the conversation was cleared after it was
// submitted); stale turns change nothing and notify nobody.
func (s *Session) Resolve(turn Turn, reply string, err error) bool {
	_, ok := s.resolve(turn, reply, err)
	return ok
}

// resolve returns the assistant message it appended, captured under the lock.
func (s *Session) resolve(turn Turn, reply string, err error) (Message, bool) {
	s.mu.Lock()

	if !s.seq.Finish(turn.Epoch) {
		s.mu.Unlock()
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session %s] Resolve: dropping stale turn epoch=%d", s.ID, turn.Epoch)
		}
		return Message{}, false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if err != nil {
		s.mu.Unlock()
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session %s] Completion failed: %v", s.ID, err)
		}
		s.sink.Notify(FailureNotification)
		return Message{}, true
	}

	msg := NewMessage(RoleAssistant, reply)
	s.conv.Append(msg)
	s.mu.Unlock()
	return msg, true
}

// Complete runs the provider call for turn on the calling goroutine.
func (s *Session) Complete(turn Turn) (string, error) {
	return s.client.Complete(turn.Context(), turn.Messages)
}

// Send runs a full turn synchronously and returns the assistant message.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	turn, err := s.Submit(ctx, text)
	if err != nil {
		return Message{}, err
	}

	reply, err := s.Complete(turn)
	msg, ok := s.resolve(turn, reply, err)
	if !ok {
		return Message{}, ErrTurnDiscarded
	}
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Clear resets the conversation. A turn still in flight is cancelled and
// its eventual result is dropped.
func (s *Session) Clear() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	wasPending := s.seq.State() == StatePending
	s.seq.Reset()
	s.conv.Clear()
	s.mu.Unlock()

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Session %s] Cleared (abandoned pending turn: %v)", s.ID, wasPending)
	}
	s.sink.Notify(ClearedNotification)
}

// Thinking reports whether a turn is in flight.
func (s *Session) Thinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.State() == StatePending
}

// State returns the sequencer state.
func (s *Session) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.State()
}

// Epoch identifies the current conversation generation; it changes on
// every Clear.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Epoch()
}

// Snapshot returns a copy of the conversation.
func (s *Session) Snapshot() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Snapshot()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Len()
}

func (s *Session) Highlight() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Highlight()
}

func (s *Session) ExpireHighlight(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.ExpireHighlight(idx)
}

// LastReply returns the newest assistant message, if any.
func (s *Session) LastReply() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.conv.messages) - 1; i >= 0; i-- {
		if s.conv.messages[i].Role == RoleAssistant {
			return s.conv.messages[i], true
		}
	}
	return Message{}, false
}
