package config

const DefaultSystemPrompt = "You are a helpful, friendly AI assistant named Inquisitive AI. " +
	"Provide concise, accurate answers to user questions. Be conversational but efficient."

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/inquisitive",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultProvider: "openai",
		Generation: GenerationConfig{
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Security: SecurityConfig{
			CredentialsStorage: SecurityPlainText,
		},
		Providers: []ProviderConfig{
			{ID: "openai", Name: "OpenAI", BaseURL: "https://api.openai.com/v1", Model: "gpt-4o-mini", Enabled: true},
			{ID: "openrouter", Name: "OpenRouter", BaseURL: "https://openrouter.ai/api/v1", Model: "openai/gpt-4o-mini", Enabled: false},
			{ID: "anthropic", Name: "Anthropic", BaseURL: "https://api.anthropic.com", Model: "claude-sonnet-4-5-20250929", Enabled: false},
			{ID: "ollama", Name: "Ollama", BaseURL: "http://localhost:11434", Model: "llama3.1:latest", Enabled: false},
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# inquisitive system configuration
# Location: ~/.config/inquisitive/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the user config, credentials and debug log live
data_directory = "~/.local/share/inquisitive"
`
}

func GenerateUserConfigTemplate() string {
	return `# inquisitive user configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Provider used for completions: openai, openrouter, anthropic or ollama
default_provider = "openai"

# System preamble sent before every conversation (optional).
# Leave empty to use the built-in Inquisitive AI persona.
system_prompt = ""

[generation]
temperature = 0.7
max_tokens = 1000

[security]
# "plaintext" stores keys in credentials.toml (0600).
# "ssh_key" encrypts them into credentials.enc with a key derived from ssh_key_path.
# API keys are never read from this file; use env vars or "inquisitive key set".
credentials_storage = "plaintext"
ssh_key_path = ""

[[providers]]
id = "openai"
name = "OpenAI"
base_url = "https://api.openai.com/v1"
model = "gpt-4o-mini"
enabled = true

[[providers]]
id = "openrouter"
name = "OpenRouter"
base_url = "https://openrouter.ai/api/v1"
model = "openai/gpt-4o-mini"
enabled = false

[[providers]]
id = "anthropic"
name = "Anthropic"
base_url = "https://api.anthropic.com"
model = "claude-sonnet-4-5-20250929"
enabled = false

[[providers]]
id = "ollama"
name = "Ollama"
base_url = "http://localhost:11434"
model = "llama3.1:latest"
enabled = false
`
}
