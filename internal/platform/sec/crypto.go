// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package sec

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrCiphertextTooShort is returned when a stored value cannot hold a nonce.
var ErrCiphertextTooShort = errors.New("sec: ciphertext too short")

// CryptoProvider encrypts sensitive string fields before they reach the
// database and hashes/verifies passwords.
//
// # Format
//
// Encrypted values are base64(nonce || ciphertext) produced by
// XChaCha20-Poly1305. Empty strings are stored as-is so optional columns
// stay empty.
type CryptoProvider struct {
	aead cipher.AEAD
}

// NewCryptoProvider builds a provider from a 64-character hex key.
func NewCryptoProvider(hexKey string) (*CryptoProvider, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("sec: encryption key is not hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("sec: encryption key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to initialize cipher: %w", err)
	}

	return &CryptoProvider{aead: aead}, nil
}

// Encrypt seals plaintext with a random nonce.
func (provider *CryptoProvider) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, provider.aead.NonceSize(), provider.aead.NonceSize()+len(plaintext)+provider.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("sec: failed to generate nonce: %w", err)
	}

	sealed := provider.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by [CryptoProvider.Encrypt].
func (provider *CryptoProvider) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("sec: ciphertext is not base64: %w", err)
	}

	nonceSize := provider.aead.NonceSize()
	if len(raw) < nonceSize+provider.aead.Overhead() {
		return "", ErrCiphertextTooShort
	}

	plaintext, err := provider.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("sec: failed to decrypt: %w", err)
	}

	return string(plaintext), nil
}
