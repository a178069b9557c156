package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jesterworks/canopy/pkg/domain"
	"github.com/jesterworks/canopy/pkg/ports"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new snapshots.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.Recorder
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts history
// snapshots at rest using AES-GCM. Tick number and wall-clock time stay
// readable for monitoring; the active set is sealed. Reading history
// written without encryption fails rather than returning opaque entries.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.Recorder) ports.Recorder {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Record(ctx context.Context, snap domain.Snapshot) error {
	plainText, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt snapshot: %w", err)
	}

	// Opaque envelope: only ordering metadata stays readable.
	envelope := domain.Snapshot{
		Tick:     snap.Tick,
		Recorded: snap.Recorded,
		Sealed:   base64.StdEncoding.EncodeToString(ciphertext),
	}
	return m.next.Record(ctx, envelope)
}

func (m *encryptionMiddleware) Recent(ctx context.Context, n int) ([]domain.Snapshot, error) {
	envelopes, err := m.next.Recent(ctx, n)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Snapshot, 0, len(envelopes))
	for _, envelope := range envelopes {
		if envelope.Sealed == "" {
			// Fail secure: with encryption configured, plaintext history
			// is unexpected.
			return nil, errors.New("snapshot is missing encrypted data envelope")
		}
		ciphertext, err := base64.StdEncoding.DecodeString(envelope.Sealed)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
		}
		plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt snapshot: %w", err)
		}
		var snap domain.Snapshot
		if err := json.Unmarshal(plainText, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decrypted snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, nil
}

func (m *encryptionMiddleware) Clear(ctx context.Context) error {
	return m.next.Clear(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
