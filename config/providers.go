package config

// KnownProviders lists the provider IDs the factory understands, in the
// order they are shown by "inquisitive config".
var KnownProviders = []string{"openai", "openrouter", "anthropic", "ollama"}

// RequiresAPIKey reports whether a provider needs a bearer credential.
func RequiresAPIKey(providerID string) bool {
	return providerID != "ollama"
}

// getProviderDisplayName returns the display name for a provider
func getProviderDisplayName(providerID string) string {
	switch providerID {
	case "ollama":
		return "Ollama"
	case "openrouter":
		return "OpenRouter"
	case "anthropic":
		return "Anthropic"
	case "openai":
		return "OpenAI"
	default:
		return providerID
	}
}

// getProviderDefaultBaseURL returns the default base URL for a provider
func getProviderDefaultBaseURL(providerID string) string {
	switch providerID {
	case "openrouter":
		return "https://openrouter.ai/api/v1"
	case "anthropic":
		return "https://api.anthropic.com"
	case "openai":
		return "https://api.openai.com/v1"
	case "ollama":
		return "http://localhost:11434"
	default:
		return ""
	}
}

// providerKeyEnv returns the conventional env var holding a provider's key
func providerKeyEnv(providerID string) string {
	switch providerID {
	case "openai":
		return "OPENAI_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// KeyEnvHint names the env vars that can carry a provider's key, for error
// messages.
func KeyEnvHint(providerID string) string {
	if name := providerKeyEnv(providerID); name != "" {
		return EnvAPIKey + " or " + name
	}
	return EnvAPIKey
}
