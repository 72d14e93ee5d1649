// Package filestore persists token slots in a single JSON file. The operator
// CLI uses it so a login survives between invocations.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	domainauth "github.com/target/mmk-accounts-ui/internal/domain/auth"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
)

const fileMode = 0o600

// TokenStore keeps slots in a JSON object keyed by session key.
type TokenStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewTokenStore returns a store backed by path. The file is created on first Save.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path, now: time.Now}
}

// DefaultPath returns the per-user location of the CLI token file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "accounts-admin", "tokens.json"), nil
}

// Path returns the backing file.
func (s *TokenStore) Path() string { return s.path }

// Save stores slot under key.
func (s *TokenStore) Save(_ context.Context, key string, slot domainauth.TokenSlot) error {
	if key == "" {
		return errors.New("token slot key cannot be empty")
	}
	if slot.Token == "" {
		return errors.New("token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	slots[key] = slot
	return s.write(slots)
}

// Get returns the live slot for key.
func (s *TokenStore) Get(_ context.Context, key string) (domainauth.TokenSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return domainauth.TokenSlot{}, err
	}
	slot, ok := slots[key]
	if !ok {
		return domainauth.TokenSlot{}, apperrors.NotFound("token slot not found")
	}
	if slot.Expired(s.now()) {
		delete(slots, key)
		if writeErr := s.write(slots); writeErr != nil {
			return domainauth.TokenSlot{}, writeErr
		}
		return domainauth.TokenSlot{}, apperrors.NotFound("token slot expired")
	}
	return slot, nil
}

// Delete removes the slot for key. A missing file or key is not an error.
func (s *TokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := slots[key]; !ok {
		return nil
	}
	delete(slots, key)
	return s.write(slots)
}

func (s *TokenStore) load() (map[string]domainauth.TokenSlot, error) {
	slots := make(map[string]domainauth.TokenSlot)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return slots, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", s.path, err)
	}
	return slots, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (s *TokenStore) write(slots map[string]domainauth.TokenSlot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*.json")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // best effort; rename consumes it on success

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp token file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
