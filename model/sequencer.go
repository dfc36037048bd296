package model

import (
	"context"
	"errors"
	"strings"
)

type RequestState int

const (
	StateIdle RequestState = iota
	StatePending
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyInput is returned for whitespace-only submissions. Callers
	// treat it as a no-op.
	ErrEmptyInput = errors.New("empty input")

	// ErrRequestPending is returned when a submission arrives while another
	// turn is still in flight.
	ErrRequestPending = errors.New("a request is already pending")

	// ErrTurnDiscarded is returned by Send when the conversation was cleared
	// before the reply arrived.
	ErrTurnDiscarded = errors.New("turn discarded by clear")
)

// Turn is the ticket for one in-flight request. It resolves only while its
// epoch is current.
type Turn struct {
	Epoch    uint64
	Messages []Message

	ctx context.Context
}

// Context returns the request context. It is cancelled when the
// conversation is cleared mid-request.
func (t Turn) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Sequencer is the Idle/Pending state machine guarding the single
// in-flight request.
type Sequencer struct {
	state RequestState
	epoch uint64
}

func (s *Sequencer) State() RequestState {
	return s.state
}

func (s *Sequencer) Epoch() uint64 {
	return s.epoch
}

// Begin moves Idle to Pending and returns the epoch the turn belongs to.
func (s *Sequencer) Begin() (uint64, error) {
	if s.state == StatePending {
		return 0, ErrRequestPending
	}
	s.state = StatePending
	return s.epoch, nil
}

// Finish returns to Idle if epoch is current. A stale epoch leaves the
// state untouched and reports false.
func (s *Sequencer) Finish(epoch uint64) bool {
	if epoch != s.epoch || s.state != StatePending {
		return false
	}
	s.state = StateIdle
	return true
}

// Reset abandons any in-flight turn and returns to Idle.
func (s *Sequencer) Reset() {
	s.epoch++
	s.state = StateIdle
}

// BuildOutbound assembles the request list: system preamble, prior history
// with each message's own role, then the new user text.
func BuildOutbound(preamble string, history []Message, userText string) []Message {
	out := make([]Message, 0, len(history)+2)
	out = append(out, Message{Role: RoleSystem, Content: preamble})
	for _, msg := range history {
		out = append(out, Message{Role: msg.Role, Content: msg.Content})
	}
	out = append(out, Message{Role: RoleUser, Content: userText})
	return out
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
