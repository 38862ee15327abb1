// Package encryption seals session payloads before they reach the cache.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrCiphertextTooShort is returned when a payload is shorter than the GCM nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Encryptor seals and opens opaque payloads. The associated data binds a
// payload to the key it is stored under, so a blob copied to another key
// fails to open.
type Encryptor interface {
	Seal(plaintext, associated []byte) (string, error)
	Open(sealed string, associated []byte) ([]byte, error)
}

// FromKey returns an AES-GCM encryptor for key, or a pass-through encoder
// when key is empty.
func FromKey(key string) (Encryptor, error) {
	if key == "" {
		return NoOp{}, nil
	}
	return NewAESGCM(key)
}

// AESGCM implements Encryptor with AES-256-GCM.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM accepts a base64-encoded or raw 32 byte key.
func NewAESGCM(key string) (*AESGCM, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil || len(raw) != 32 {
		raw = []byte(key)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("session encryption key must be 32 bytes, got %d", len(raw))
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &AESGCM{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce||ciphertext, base64 encoded.
func (a *AESGCM) Seal(plaintext, associated []byte) (string, error) {
	nonce := make([]byte, a.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	out := a.aead.Seal(nonce, nonce, plaintext, associated)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (a *AESGCM) Open(sealed string, associated []byte) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	n := a.aead.NonceSize()
	if len(data) < n {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := a.aead.Open(nil, data[:n], data[n:], associated)
	if err != nil {
		return nil, fmt.Errorf("open payload: %w", err)
	}
	return plaintext, nil
}

// GenerateKey returns a random base64-encoded 32 byte key.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// NoOp base64-encodes payloads without encrypting them. Used when no key is configured.
type NoOp struct{}

// Seal implements Encryptor.
func (NoOp) Seal(plaintext, _ []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(plaintext), nil
}

// Open implements Encryptor.
func (NoOp) Open(sealed string, _ []byte) ([]byte, error) {
	return base64.StdEncoding.DecodeString(sealed)
}
