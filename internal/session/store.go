package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

var ErrCorruptStore = errors.New("session store is corrupt or sealed with another key")

// TokenStore persists the bearer token between restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear() error {
	return m.Save("")
}

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

// scrypt cost parameters for the store key.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// FileStore seals the token with secretbox under a key derived from a
// passphrase. The file layout is salt | nonce | box.
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase []byte
}

// NewFileStore creates a store at path. The passphrase must not be empty.
func NewFileStore(path, passphrase string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session file path is required")
	}
	if passphrase == "" {
		return nil, errors.New("session key is required")
	}
	return &FileStore{path: path, passphrase: []byte(passphrase)}, nil
}

func (f *FileStore) deriveKey(salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key(f.passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// Load returns the stored token, or "" when no file exists.
func (f *FileStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) < saltSize+nonceSize+secretbox.Overhead {
		return "", ErrCorruptStore
	}

	key, err := f.deriveKey(data[:saltSize])
	if err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])

	plain, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return "", ErrCorruptStore
	}
	return strings.TrimSpace(string(plain)), nil
}

// Save seals token under a fresh salt and nonce and replaces the file atomically.
func (f *FileStore) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	header := make([]byte, saltSize+nonceSize)
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	key, err := f.deriveKey(header[:saltSize])
	if err != nil {
		return err
	}
	var nonce [nonceSize]byte
	copy(nonce[:], header[saltSize:])
	sealed := secretbox.Seal(header, []byte(token), &nonce, key)

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
