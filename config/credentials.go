package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SecurityMethod selects how the credential store is kept on disk.
type SecurityMethod string

const (
	// SecurityPlainText keeps keys in credentials.toml, readable only by the owner.
	SecurityPlainText SecurityMethod = "plaintext"
	// SecuritySSHKey seals keys into credentials.enc; see keySealer.
	SecuritySSHKey SecurityMethod = "ssh_key"
)

// CredentialStore holds provider API keys loaded at runtime from the data
// directory. Keys are never part of the config file itself.
type CredentialStore struct {
	method     SecurityMethod
	keys       map[string]string // provider ID -> API key
	sshKeyPath string
	passphrase string
	sealer     *keySealer
}

func NewCredentialStore(method SecurityMethod, sshKeyPath string) *CredentialStore {
	return &CredentialStore{
		method:     method,
		keys:       make(map[string]string),
		sshKeyPath: sshKeyPath,
	}
}

// SetPassphrase unlocks a passphrase-protected SSH key. It takes effect the
// next time the store is read or written.
func (c *CredentialStore) SetPassphrase(passphrase string) {
	c.passphrase = passphrase
	c.sealer = nil
}

// Load replaces the in-memory keys with the file for the configured method.
// A missing file is an empty store. On error the previous keys are kept.
func (c *CredentialStore) Load(dataDir string) error {
	path, err := c.path(dataDir)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.keys = make(map[string]string)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	keys, err := c.decode(data)
	if err != nil {
		return err
	}
	if keys == nil {
		keys = make(map[string]string)
	}
	c.keys = keys
	return nil
}

// Save writes the store with 0600 permissions.
func (c *CredentialStore) Save(dataDir string) error {
	path, err := c.path(dataDir)
	if err != nil {
		return err
	}

	data, err := c.encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *CredentialStore) Get(providerID string) string {
	return c.keys[providerID]
}

// Set stores apiKey for providerID in memory; call Save to persist it.
func (c *CredentialStore) Set(providerID string, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("empty API key for %s", providerID)
	}
	c.keys[providerID] = apiKey
	return nil
}

func (c *CredentialStore) Delete(providerID string) error {
	delete(c.keys, providerID)
	return nil
}

func (c *CredentialStore) Has(providerID string) bool {
	_, ok := c.keys[providerID]
	return ok
}

// GetMethod reports the storage method, for display.
func (c *CredentialStore) GetMethod() SecurityMethod {
	return c.method
}

func (c *CredentialStore) path(dataDir string) (string, error) {
	switch c.method {
	case SecurityPlainText:
		return filepath.Join(dataDir, "credentials.toml"), nil
	case SecuritySSHKey:
		return filepath.Join(dataDir, "credentials.enc"), nil
	default:
		return "", fmt.Errorf("unknown credentials_storage %q", c.method)
	}
}

// plainTextFile is the layout of credentials.toml:
//
//	[credentials]
//	openai = "sk-..."
type plainTextFile struct {
	Credentials map[string]string `toml:"credentials"`
}

func (c *CredentialStore) decode(data []byte) (map[string]string, error) {
	if c.method == SecurityPlainText {
		var f plainTextFile
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse credentials.toml: %w", err)
		}
		return f.Credentials, nil
	}

	sealer, err := c.keySealer()
	if err != nil {
		return nil, err
	}
	plaintext, err := sealer.open(data)
	if err != nil {
		return nil, err
	}
	var keys map[string]string
	if err := json.Unmarshal(plaintext, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse sealed credentials: %w", err)
	}
	return keys, nil
}

func (c *CredentialStore) encode() ([]byte, error) {
	if c.method == SecurityPlainText {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(plainTextFile{Credentials: c.keys}); err != nil {
			return nil, fmt.Errorf("failed to encode credentials: %w", err)
		}
		return buf.Bytes(), nil
	}

	sealer, err := c.keySealer()
	if err != nil {
		return nil, err
	}
	plaintext, err := json.Marshal(c.keys)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}
	return sealer.seal(plaintext)
}

func (c *CredentialStore) keySealer() (*keySealer, error) {
	if c.sealer != nil {
		return c.sealer, nil
	}
	if c.sshKeyPath == "" {
		return nil, fmt.Errorf("credentials_storage is %q but ssh_key_path is empty", SecuritySSHKey)
	}
	sealer, err := newKeySealer(c.sshKeyPath, c.passphrase)
	if err != nil {
		return nil, err
	}
	c.sealer = sealer
	return sealer, nil
}
