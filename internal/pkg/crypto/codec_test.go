package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	bodies := []string{
		"",
		"hello",
		"multi\nline\nbody",
		strings.Repeat("x", 4096),
		"unicode: héllo wörld 你好",
	}

	for _, body := range bodies {
		stored, encrypted, err := codec.Encrypt(body)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", body, err)
		}
		if !encrypted {
			t.Fatal("expected encrypted flag with key configured")
		}
		if stored == body && body != "" {
			t.Error("ciphertext equals plaintext")
		}

		got, err := codec.Decrypt(stored, true)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if got != body {
			t.Errorf("round trip mismatch: got %q want %q", got, body)
		}
	}
}

func TestFreshNoncePerEncryption(t *testing.T) {
	codec, _ := NewCodec("test-secret")

	a, _, _ := codec.Encrypt("hello")
	b, _, _ := codec.Encrypt("hello")
	if a == b {
		t.Error("two encryptions of the same body must differ (random nonce)")
	}
}

func TestTamperDetection(t *testing.T) {
	codec, _ := NewCodec("test-secret")
	stored, _, _ := codec.Encrypt("hello")

	raw, _ := base64.StdEncoding.DecodeString(stored)
	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01

		_, err := codec.Decrypt(base64.StdEncoding.EncodeToString(tampered), true)
		if err == nil {
			t.Fatalf("tampering byte %d went undetected", i)
		}
	}
}

func TestKeyMismatchFailsClosed(t *testing.T) {
	alice, _ := NewCodec("key-a")
	bob, _ := NewCodec("key-b")

	stored, _, _ := alice.Encrypt("secret")
	if _, err := bob.Decrypt(stored, true); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("expected ErrDecryptFailed, got %v", err)
	}
}

func TestPassThroughMode(t *testing.T) {
	codec, err := NewCodec("")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if codec.Enabled() {
		t.Fatal("codec should be disabled without a key")
	}

	stored, encrypted, err := codec.Encrypt("hello")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if encrypted {
		t.Error("pass-through must flag encrypted=false")
	}
	if stored != "hello" {
		t.Errorf("pass-through body changed: %q", stored)
	}

	got, err := codec.Decrypt(stored, false)
	if err != nil || got != "hello" {
		t.Errorf("pass-through decrypt = (%q, %v)", got, err)
	}
}
