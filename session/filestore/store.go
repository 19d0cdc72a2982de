// Package filestore persists the session token pair on disk - the durable
// mirror that lets a restarted client restore its session without
// re-authenticating.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/session"
)

var _ session.TokenStore = (*Store)(nil)

type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store keeps the token pair as a JSON file with owner-only permissions.
// Writes only happen from user-initiated, serialized actions, so the mutex
// guards nothing more than overlapping reads during hydration.
type Store struct {
	path string
	lock sync.Mutex
}

// New builds a Store at the given file path. Parent directories are created
// on the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted pair. A missing file is not an error - it returns
// empty strings, the same as "nothing stored".
func (s *Store) Load() (string, string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", errors.Wrap(err, "[Store.Load] read token file")
	}
	return decodeTokens(raw)
}

// Save writes both tokens atomically via a rename.
func (s *Store) Save(accessToken, refreshToken string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	raw, err := encodeTokens(accessToken, refreshToken)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, raw)
}

// Clear removes the persisted pair. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[Store.Clear] remove token file")
	}
	return nil
}

func encodeTokens(accessToken, refreshToken string) ([]byte, error) {
	raw, err := json.Marshal(storedTokens{AccessToken: accessToken, RefreshToken: refreshToken})
	if err != nil {
		return nil, errors.Wrap(err, "[encodeTokens] marshal tokens")
	}
	return raw, nil
}

func decodeTokens(raw []byte) (string, string, error) {
	var tokens storedTokens
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return "", "", errors.Wrap(err, "[decodeTokens] unmarshal token file")
	}
	return tokens.AccessToken, tokens.RefreshToken, nil
}

func writeFileAtomic(path string, raw []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[writeFileAtomic] create directory")
	}

	tmp, err := os.CreateTemp(dir, ".tokens-*")
	if err != nil {
		return errors.Wrap(err, "[writeFileAtomic] create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[writeFileAtomic] chmod")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[writeFileAtomic] write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[writeFileAtomic] close")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "[writeFileAtomic] rename")
	}
	return nil
}
