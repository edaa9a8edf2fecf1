package sessionstore

import (
	"sync"

	"github.com/jmog/academy/core/session"
)

// DummyStorage is an in-memory Storage for tests.
type DummyStorage struct {
	mu    sync.Mutex
	st    *session.State
	saves int
}

var _ session.Storage = (*DummyStorage)(nil)

func NewDummyStorage(initial ...session.State) *DummyStorage {
	s := &DummyStorage{}
	if len(initial) > 0 {
		st := initial[0]
		s.st = &st
	}
	return s
}

func (s *DummyStorage) Save(st session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = &st
	s.saves++
	return nil
}

func (s *DummyStorage) Load() (session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st == nil {
		return session.State{}, session.ErrNoState
	}
	return *s.st, nil
}

// Saves reports how many times Save ran.
func (s *DummyStorage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
