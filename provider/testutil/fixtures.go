package testutil

import (
	"encoding/json"
	"time"

	"inquisitive/model"
)

const TestPreamble = "You are a test assistant."

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		{
			Role:      model.RoleSystem,
			Content:   TestPreamble,
			Timestamp: time.Now(),
		},
		{
			Role:      model.RoleUser,
			Content:   "Hello, how are you?",
			Timestamp: time.Now(),
		},
		{
			Role:      model.RoleAssistant,
			Content:   "I'm doing well, thank you!",
			Timestamp: time.Now(),
		},
		{
			Role:      model.RoleUser,
			Content:   "Can you help me with a task?",
			Timestamp: time.Now(),
		},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{
			Role:      model.RoleUser,
			Content:   content,
			Timestamp: time.Now(),
		},
	}
}

// EmptyMessages returns an empty message slice for edge case testing
func EmptyMessages() []model.Message {
	return []model.Message{}
}

// SystemMessage returns a system message for testing
func SystemMessage(content string) model.Message {
	return model.Message{
		Role:      model.RoleSystem,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// RateLimitBody is a provider error body as returned with a 429
const RateLimitBody = `{"error":{"message":"rate limited","type":"requests","code":"rate_limit_exceeded"}}`

// ChatCompletionBody returns a minimal OpenAI-compatible success body
func ChatCompletionBody(content string) string {
	return `{"id":"chatcmpl-test","object":"chat.completion","created":1700000000,"model":"gpt-4o-mini",` +
		`"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` +
		quote(content) + `}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
