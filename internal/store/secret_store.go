package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mailbox/internal/domain"
)

const (
	sessionsDir    = "sessions"
	secretFilename = "secret.json"
)

// ErrInvalidScope is returned for a scope that is empty or not a single path element.
var ErrInvalidScope = errors.New("invalid session scope")

// secretRecord is what gets sealed.
type secretRecord struct {
	Secret  string `json:"secret"`
	SavedAt int64  `json:"saved_at"`
}

// FileSecretStore keeps the session secret sealed under
// <home>/sessions/<scope>/secret.json.
type FileSecretStore struct {
	path       string
	passphrase string
	kdf        KDFParams
	mu         sync.Mutex
}

// NewFileSecretStore returns a store for scope under home, sealing with passphrase.
func NewFileSecretStore(home string, scope domain.SessionScope, passphrase string) (*FileSecretStore, error) {
	s := string(scope)
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
	return &FileSecretStore{
		path:       filepath.Join(home, sessionsDir, s, secretFilename),
		passphrase: passphrase,
		kdf:        DefaultKDFParams,
	}, nil
}

// WithKDFParams overrides the scrypt cost for subsequent saves.
func (s *FileSecretStore) WithKDFParams(kdf KDFParams) *FileSecretStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kdf = kdf
	return s
}

// Path returns the file the secret is kept in.
func (s *FileSecretStore) Path() string { return s.path }

// SaveSecret seals secret and replaces any previous one.
func (s *FileSecretStore) SaveSecret(secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(secretRecord{Secret: secret, SavedAt: time.Now().Unix()})
	if err != nil {
		return err
	}
	sealed, err := seal(s.passphrase, raw, s.kdf)
	if err != nil {
		return err
	}
	return writeFile(s.path, sealed, 0o600)
}

// LoadSecret returns the stored secret; ok is false when none is stored.
func (s *FileSecretStore) LoadSecret() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path)
	if err != nil {
		return "", false, err
	}
	if b == nil {
		return "", false, nil
	}
	raw, err := open(s.passphrase, b)
	if err != nil {
		return "", false, err
	}
	var rec secretRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return "", false, err
	}
	if rec.Secret == "" {
		return "", false, nil
	}
	return rec.Secret, true, nil
}

// ClearSecret removes the stored secret. Clearing an empty store is not an error.
func (s *FileSecretStore) ClearSecret() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(s.path)
}

// MemorySecretStore keeps the secret in process memory.
type MemorySecretStore struct {
	mu     sync.Mutex
	secret string
}

// NewMemorySecretStore returns an empty store.
func NewMemorySecretStore() *MemorySecretStore { return &MemorySecretStore{} }

func (m *MemorySecretStore) SaveSecret(secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secret = secret
	return nil
}

func (m *MemorySecretStore) LoadSecret() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secret, m.secret != "", nil
}

func (m *MemorySecretStore) ClearSecret() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secret = ""
	return nil
}

// Compile-time assertions that both stores implement domain.SecretStore.
var (
	_ domain.SecretStore = (*FileSecretStore)(nil)
	_ domain.SecretStore = (*MemorySecretStore)(nil)
)
