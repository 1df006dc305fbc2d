// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package credstore persists the access and renewal tokens across restarts.
package credstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/zkid-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// credFile is the encrypted credential file name inside the data directory.
const credFile = "credentials"

// keyFile holds the random key material the encryption key is derived from.
const keyFile = "credentials.key"

// keyDerivationSalt is a fixed application salt for PBKDF2. The key material
// itself is random per install; the salt only domain-separates this use.
const keyDerivationSalt = "zkid-credstore-v1"

// pbkdf2Iterations stretches the stored key material into the AES key.
const pbkdf2Iterations = 10000

// keySize is the AES-256 key size in bytes.
const keySize = 32

// encryptedPrefix marks the on-disk format: ENC:base64(nonce|ciphertext|tag).
const encryptedPrefix = "ENC:"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrCorruptStore indicates the credential file could not be decrypted.
	ErrCorruptStore = errors.New("credential store corrupt or key mismatch")
)

// =============================================================================
// STORE
// =============================================================================

// Store is the single source of truth for persisted session credentials.
// Tokens are encrypted at rest with AES-256-GCM under a machine-local key.
// All operations are synchronous; Load treats absence as a normal state.
type Store struct {
	dir  string
	aead cipher.AEAD
}

// credentials is the persisted payload.
type credentials struct {
	AccessToken  string `json:"access_token"`
	RenewalToken string `json:"renewal_token"`
}

// New opens (or initializes) the credential store in the given directory.
// First use generates the key material file with 0600 permissions.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create credential directory: %w", err)
	}

	material, err := loadOrCreateKeyMaterial(filepath.Join(dir, keyFile))
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key(material, []byte(keyDerivationSalt), pbkdf2Iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init GCM: %w", err)
	}

	return &Store{dir: dir, aead: aead}, nil
}

// loadOrCreateKeyMaterial reads the key file, generating it on first use.
func loadOrCreateKeyMaterial(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		material, decErr := base64.StdEncoding.DecodeString(string(data))
		if decErr != nil || len(material) != keySize {
			return nil, fmt.Errorf("%w: bad key file", ErrCorruptStore)
		}
		return material, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	material := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, material); err != nil {
		return nil, fmt.Errorf("generate key material: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(material)
	if err := util.AtomicWriteFile(path, []byte(encoded), 0600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return material, nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Save persists both tokens, replacing whatever was stored before.
func (s *Store) Save(accessToken, renewalToken string) error {
	plain, err := json.Marshal(credentials{
		AccessToken:  accessToken,
		RenewalToken: renewalToken,
	})
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, plain, nil)
	payload := encryptedPrefix + base64.StdEncoding.EncodeToString(sealed)

	return util.AtomicWriteFile(s.path(), []byte(payload), 0600)
}

// Load returns the persisted tokens. Absence of credentials is a normal
// state and yields two empty strings; a corrupt or undecryptable file is
// treated the same way (and logged), so callers never have to branch on
// an error to know whether they are signed in.
func (s *Store) Load() (accessToken, renewalToken string) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", ""
	}

	payload := string(data)
	if len(payload) <= len(encryptedPrefix) || payload[:len(encryptedPrefix)] != encryptedPrefix {
		log.Printf("credstore: unrecognized credential file format, ignoring")
		return "", ""
	}
	sealed, err := base64.StdEncoding.DecodeString(payload[len(encryptedPrefix):])
	if err != nil || len(sealed) < s.aead.NonceSize() {
		log.Printf("credstore: corrupt credential file, ignoring")
		return "", ""
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		log.Printf("credstore: credential decryption failed, ignoring")
		return "", ""
	}

	var c credentials
	if err := json.Unmarshal(plain, &c); err != nil {
		return "", ""
	}
	return c.AccessToken, c.RenewalToken
}

// Clear removes the persisted credentials. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// path returns the credential file path.
func (s *Store) path() string {
	return filepath.Join(s.dir, credFile)
}
