package testutil

import (
	"context"
	"sync"

	"inquisitive/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	CompleteFunc func(ctx context.Context, messages []model.Message) (string, error)
	PingFunc     func(ctx context.Context) error

	// State
	currentModel string

	mu    sync.Mutex
	calls [][]model.Message
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.CompleteFunc = mock.defaultComplete
	mock.PingFunc = mock.defaultPing
	return mock
}

// NewReplyProvider returns a mock that answers every request with reply
func NewReplyProvider(reply string) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.CompleteFunc = func(ctx context.Context, messages []model.Message) (string, error) {
		return reply, nil
	}
	return mock
}

// NewFailingProvider returns a mock that fails every request with err
func NewFailingProvider(err error) *MockProvider {
	mock := NewMockProvider("mock-model")
	mock.CompleteFunc = func(ctx context.Context, messages []model.Message) (string, error) {
		return "", err
	}
	return mock
}

func (m *MockProvider) defaultComplete(ctx context.Context, messages []model.Message) (string, error) {
	// Default: echo back a mock response
	return "Mock response", nil
}

func (m *MockProvider) defaultPing(ctx context.Context) error {
	return nil
}

func (m *MockProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	m.mu.Lock()
	recorded := make([]model.Message, len(messages))
	copy(recorded, messages)
	m.calls = append(m.calls, recorded)
	m.mu.Unlock()

	return m.CompleteFunc(ctx, messages)
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// Calls returns the outbound lists received so far
func (m *MockProvider) Calls() [][]model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]model.Message, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// RecordingSink collects notifications for assertions
type RecordingSink struct {
	mu            sync.Mutex
	notifications []model.Notification
}

func (r *RecordingSink) Notify(n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *RecordingSink) Notifications() []model.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Last returns the most recent notification, if any
func (r *RecordingSink) Last() (model.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return model.Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}
