package provider

import (
	"testing"

	"github.com/ollama/ollama/api"

	"inquisitive/model"
	"inquisitive/provider/testutil"
)

func TestConvertToOllamaMessages(t *testing.T) {
	tests := []struct {
		name     string
		input    []model.Message
		expected []api.Message
	}{
		{
			name:     "empty messages",
			input:    testutil.EmptyMessages(),
			expected: []api.Message{},
		},
		{
			name:  "single user message",
			input: testutil.SingleUserMessage("Hello"),
			expected: []api.Message{
				{Role: "user", Content: "Hello"},
			},
		},
		{
			name:  "conversation with preamble",
			input: testutil.TestMessages(),
			expected: []api.Message{
				{Role: "system", Content: testutil.TestPreamble},
				{Role: "user", Content: "Hello, how are you?"},
				{Role: "assistant", Content: "I'm doing well, thank you!"},
				{Role: "user", Content: "Can you help me with a task?"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertToOllamaMessages(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d messages, got %d", len(tt.expected), len(result))
			}
			for i, msg := range result {
				if msg.Role != tt.expected[i].Role || msg.Content != tt.expected[i].Content {
					t.Errorf("message %d: got %+v, want %+v", i, msg, tt.expected[i])
				}
			}
		})
	}
}

func TestConvertToOpenAIMessagesKeepsRoles(t *testing.T) {
	result := ConvertToOpenAIMessages(testutil.TestMessages())

	if len(result) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(result))
	}
	if result[0].OfSystem == nil {
		t.Error("message 0 should be a system message")
	}
	if result[1].OfUser == nil || result[3].OfUser == nil {
		t.Error("messages 1 and 3 should be user messages")
	}
	if result[2].OfAssistant == nil {
		t.Error("message 2 should be an assistant message")
	}
}

func TestConvertToAnthropicMessagesSplitsSystem(t *testing.T) {
	msgs, system := convertToAnthropicMessages(testutil.TestMessages())

	if len(system) != 1 || system[0].Text != testutil.TestPreamble {
		t.Errorf("system blocks = %+v", system)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 non-system messages, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" || msgs[2].Role != "user" {
		t.Errorf("roles = %s %s %s", msgs[0].Role, msgs[1].Role, msgs[2].Role)
	}
}
