package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// keyDerivationMessage is signed by the SSH key; the hash of the signature
// is the AES-256 key. Changing it makes existing credentials.enc unreadable.
const keyDerivationMessage = "inquisitive-credentials-v1"

// keySealer seals the credentials blob with AES-256-GCM. Output layout is
// nonce || ciphertext || tag.
type keySealer struct {
	aead cipher.AEAD
}

// newKeySealer derives the sealing key from the SSH private key at keyPath.
// ed25519 and RSA PKCS#1 v1.5 keys sign deterministically, so the same key
// always unseals what it sealed. ECDSA keys do not and are rejected.
func newKeySealer(keyPath, passphrase string) (*keySealer, error) {
	signer, err := loadSigner(keyPath, passphrase)
	if err != nil {
		return nil, err
	}
	switch signer.PublicKey().Type() {
	case ssh.KeyAlgoECDSA256, ssh.KeyAlgoECDSA384, ssh.KeyAlgoECDSA521:
		return nil, fmt.Errorf("SSH key %s: ECDSA signatures are not deterministic, use ed25519 or RSA", keyPath)
	}

	sig, err := signer.Sign(rand.Reader, []byte(keyDerivationMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to derive credentials key: %w", err)
	}
	key := sha256.Sum256(sig.Blob)

	if DebugLog != nil {
		DebugLog.Printf("[Credentials] sealing key derived from %s (%s)", keyPath, signer.PublicKey().Type())
	}
	return sealerFromKey(key[:])
}

func sealerFromKey(key []byte) (*keySealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &keySealer{aead: aead}, nil
}

func (s *keySealer) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *keySealer) open(blob []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(blob) < n+s.aead.Overhead() {
		return nil, errors.New("sealed credentials are truncated")
	}
	plaintext, err := s.aead.Open(nil, blob[:n], blob[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("credentials were sealed with a different key: %w", err)
	}
	return plaintext, nil
}

// loadSigner parses the private key, using passphrase only when the key
// turns out to be protected.
func loadSigner(keyPath, passphrase string) (ssh.Signer, error) {
	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(pemBytes)
	var missing *ssh.PassphraseMissingError
	switch {
	case err == nil:
		return signer, nil
	case !errors.As(err, &missing):
		return nil, fmt.Errorf("invalid SSH key %s: %w", keyPath, err)
	case passphrase == "":
		return nil, fmt.Errorf("SSH key %s is encrypted: set %s", keyPath, EnvSSHPassphrase)
	}

	signer, err = ssh.ParsePrivateKeyWithPassphrase(pemBytes, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to unlock SSH key %s: %w", keyPath, err)
	}
	return signer, nil
}
