package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrDecryptFailed covers tampering and key mismatch. Decryption fails
	// closed; corrupted plaintext is never returned.
	ErrDecryptFailed = errors.New("message decryption failed")

	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Codec encrypts message bodies at rest with ChaCha20-Poly1305.
//
// Storage layout, base64-encoded: nonce | tag | encrypted body.
//
// With no key configured the codec runs in pass-through mode: bodies are
// stored as plaintext and flagged encrypted=false. That degrade is reported
// by config validation at startup, not applied silently.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives a 256-bit key from the configured secret. An empty secret
// yields a pass-through codec.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return &Codec{}, nil
	}

	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &Codec{aead: aead}, nil
}

func (c *Codec) Enabled() bool {
	return c.aead != nil
}

// Encrypt seals the plaintext with a fresh random nonce. The second return
// value reports whether the body was actually encrypted.
func (c *Codec) Encrypt(plaintext string) (string, bool, error) {
	if c.aead == nil {
		return plaintext, false, nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", false, fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	// Seal appends the tag after the body; reorder to nonce|tag|body.
	tagAt := len(sealed) - c.aead.Overhead()
	body, tag := sealed[:tagAt], sealed[tagAt:]

	packed := make([]byte, 0, len(nonce)+len(tag)+len(body))
	packed = append(packed, nonce...)
	packed = append(packed, tag...)
	packed = append(packed, body...)

	return base64.StdEncoding.EncodeToString(packed), true, nil
}

// Decrypt reverses Encrypt. The encrypted flag is the one persisted with the
// message; pass-through bodies are returned as-is.
func (c *Codec) Decrypt(stored string, encrypted bool) (string, error) {
	if !encrypted {
		return stored, nil
	}
	if c.aead == nil {
		return "", fmt.Errorf("%w: no key configured", ErrDecryptFailed)
	}

	packed, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	nonceSize := c.aead.NonceSize()
	overhead := c.aead.Overhead()
	if len(packed) < nonceSize+overhead {
		return "", ErrCiphertextTooShort
	}

	nonce := packed[:nonceSize]
	tag := packed[nonceSize : nonceSize+overhead]
	body := packed[nonceSize+overhead:]

	sealed := make([]byte, 0, len(body)+len(tag))
	sealed = append(sealed, body...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
