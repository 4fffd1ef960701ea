// Package tokenstore persists the opaque auth tokens on local disk.
// This is the only durable client-owned state: two raw text files under
// the application's user-data directory, one for the access token and
// one for the refresh token.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	accessFile  = "token"
	refreshFile = "refresh_token"
)

// Store reads and writes the token files. Save and Clear are
// best-effort from the caller's point of view; Load of a missing file
// returns the empty string, not an error.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Save(token string) error        { return s.write(accessFile, token) }
func (s *Store) Load() (string, error)          { return s.read(accessFile) }
func (s *Store) Clear() error                   { return s.remove(accessFile) }
func (s *Store) SaveRefresh(token string) error { return s.write(refreshFile, token) }
func (s *Store) LoadRefresh() (string, error)   { return s.read(refreshFile) }
func (s *Store) ClearRefresh() error            { return s.remove(refreshFile) }

func (s *Store) write(name, token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("tokenstore: create dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(token), 0o600); err != nil {
		return fmt.Errorf("tokenstore: write %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("tokenstore: read %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("tokenstore: clear %s: %w", name, err)
	}
	return nil
}
