package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

// GenerationConfig holds the fixed sampling parameters sent with every
// completion request.
type GenerationConfig struct {
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type ProviderConfig struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model"`
	Enabled bool   `toml:"enabled"`
}

type SecurityConfig struct {
	CredentialsStorage SecurityMethod `toml:"credentials_storage"`
	SSHKeyPath         string         `toml:"ssh_key_path,omitempty"`
}

type UserConfig struct {
	DefaultProvider string           `toml:"default_provider"`
	SystemPrompt    string           `toml:"system_prompt,omitempty"`
	Generation      GenerationConfig `toml:"generation"`
	Security        SecurityConfig   `toml:"security"`
	Providers       []ProviderConfig `toml:"providers"`
}

type Config struct {
	DataDirectory   string
	DefaultProvider string
	SystemPrompt    string
	Generation      GenerationConfig
	Security        SecurityConfig
	Providers       []ProviderConfig

	// Env overrides applied on top of the active provider entry
	ModelOverride   string
	BaseURLOverride string

	CredentialStore *CredentialStore
}

var Debug = false
var DebugLog *log.Logger

const (
	EnvProvider      = "INQUISITIVE_PROVIDER"
	EnvModel         = "INQUISITIVE_MODEL"
	EnvBaseURL       = "INQUISITIVE_BASE_URL"
	EnvDataDir       = "INQUISITIVE_DATA_DIR"
	EnvAPIKey        = "INQUISITIVE_API_KEY"
	EnvDebug         = "INQUISITIVE_DEBUG"
	EnvSSHPassphrase = "INQUISITIVE_SSH_PASSPHRASE"
)

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// Preamble returns the system message prepended to every request.
func (c *Config) Preamble() string {
	if c.SystemPrompt != "" {
		return c.SystemPrompt
	}
	return DefaultSystemPrompt
}

// ActiveProvider returns the provider entry selected by DefaultProvider with
// env overrides applied. Unknown IDs fall back to a bare entry with default
// base URL so the factory can report the error.
func (c *Config) ActiveProvider() ProviderConfig {
	p := ProviderConfig{
		ID:      c.DefaultProvider,
		Name:    getProviderDisplayName(c.DefaultProvider),
		BaseURL: getProviderDefaultBaseURL(c.DefaultProvider),
		Enabled: true,
	}
	for _, candidate := range c.Providers {
		if candidate.ID == c.DefaultProvider {
			p = candidate
			if p.BaseURL == "" {
				p.BaseURL = getProviderDefaultBaseURL(p.ID)
			}
			break
		}
	}

	if c.ModelOverride != "" {
		p.Model = c.ModelOverride
	}
	if c.BaseURLOverride != "" {
		p.BaseURL = c.BaseURLOverride
	}
	return p
}

// APIKey resolves the credential for a provider at runtime. Lookup order:
// INQUISITIVE_API_KEY, the provider's conventional env var, the credential
// store. Returns "" when nothing is configured.
func (c *Config) APIKey(providerID string) string {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	if name := providerKeyEnv(providerID); name != "" {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	if c.CredentialStore != nil {
		return c.CredentialStore.Get(providerID)
	}
	return ""
}

// APIKeySource describes where APIKey would find the provider's key, or
// returns "" when there is none. It never exposes the key itself.
func (c *Config) APIKeySource(providerID string) string {
	if os.Getenv(EnvAPIKey) != "" {
		return "env " + EnvAPIKey
	}
	if name := providerKeyEnv(providerID); name != "" && os.Getenv(name) != "" {
		return "env " + name
	}
	if c.CredentialStore != nil && c.CredentialStore.Has(providerID) {
		return "credential store (" + string(c.CredentialStore.GetMethod()) + ")"
	}
	return ""
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv(EnvProvider); p != "" {
		c.DefaultProvider = p
	}
	if m := os.Getenv(EnvModel); m != "" {
		c.ModelOverride = m
	}
	if u := os.Getenv(EnvBaseURL); u != "" {
		c.BaseURLOverride = u
	}
}

func CheckDebug() bool {
	debug := os.Getenv(EnvDebug)
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log carries conversation text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (%s=%s) ===", EnvDebug, os.Getenv(EnvDebug))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}

	cfg := &Config{DataDirectory: systemCfg.DataDirectory}
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.DefaultProvider = userCfg.DefaultProvider
	cfg.SystemPrompt = userCfg.SystemPrompt
	cfg.Generation = userCfg.Generation
	cfg.Security = userCfg.Security
	cfg.Providers = userCfg.Providers

	defaults := DefaultUserConfig()
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = defaults.DefaultProvider
	}
	if cfg.Generation.MaxTokens <= 0 {
		cfg.Generation.MaxTokens = defaults.Generation.MaxTokens
	}
	if cfg.Security.CredentialsStorage == "" {
		cfg.Security.CredentialsStorage = SecurityPlainText
	}

	cfg.applyEnvOverrides()

	store := NewCredentialStore(cfg.Security.CredentialsStorage, ExpandPath(cfg.Security.SSHKeyPath))
	store.SetPassphrase(os.Getenv(EnvSSHPassphrase))
	if err := store.Load(dataDir); err != nil {
		// A broken store must not block env-provided keys
		if DebugLog != nil {
			DebugLog.Printf("[Config] credential store load failed: %v", err)
		}
	}
	cfg.CredentialStore = store

	return cfg, nil
}

// SaveDefaults persists the effective provider and model (after env and flag
// overrides) to config.toml, so the next run starts with the same selection.
func (c *Config) SaveDefaults() error {
	active := c.ActiveProvider()
	if !slices.Contains(KnownProviders, active.ID) {
		return fmt.Errorf("unknown provider %q", active.ID)
	}

	userCfg, err := LoadUserConfig(c.DataDir())
	if err != nil {
		return err
	}
	userCfg.DefaultProvider = active.ID

	i := slices.IndexFunc(userCfg.Providers, func(p ProviderConfig) bool { return p.ID == active.ID })
	if i < 0 {
		userCfg.Providers = append(userCfg.Providers, ProviderConfig{ID: active.ID, Name: active.Name})
		i = len(userCfg.Providers) - 1
	}
	userCfg.Providers[i].Enabled = true
	if active.Model != "" {
		userCfg.Providers[i].Model = active.Model
	}

	if DebugLog != nil {
		DebugLog.Printf("[Config] saving defaults: provider=%s model=%s", active.ID, active.Model)
	}
	return SaveUserConfig(userCfg, c.DataDir())
}
