package storefakes

import (
	"sync"

	"github.com/esther-pixel31/swiftsend-go/session"
)

var _ session.TokenStore = (*FakeTokenStore)(nil)

// FakeTokenStore is an in-memory TokenStore for tests. The error fields, when
// set, are returned by the corresponding operation.
type FakeTokenStore struct {
	lock         sync.RWMutex
	accessToken  string
	refreshToken string

	LoadErr  error
	SaveErr  error
	ClearErr error

	saveCalls  int
	clearCalls int
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{}
}

// Seed installs a token pair as if a previous run had persisted it.
func (s *FakeTokenStore) Seed(accessToken, refreshToken string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

func (s *FakeTokenStore) Load() (string, string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.LoadErr != nil {
		return "", "", s.LoadErr
	}
	return s.accessToken, s.refreshToken, nil
}

// Saves reports how many times Save has been called.
func (s *FakeTokenStore) Saves() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.saveCalls
}

// Clears reports how many times Clear has been called.
func (s *FakeTokenStore) Clears() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.clearCalls
}

func (s *FakeTokenStore) Save(accessToken, refreshToken string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.saveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	return nil
}

func (s *FakeTokenStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.clearCalls++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.accessToken = ""
	s.refreshToken = ""
	return nil
}
