package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/session"
)

type fileStorage struct {
	path string
	mu   sync.Mutex
}

var _ session.Storage = (*fileStorage)(nil)

// NewFileStorage persists the session record as a JSON file on local disk.
func NewFileStorage(conf *core.Config) session.Storage {
	return &fileStorage{path: conf.SessionFile}
}

func (s *fileStorage) Save(st session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session state")
	}

	// write-then-rename so a crash mid-write cannot corrupt the record
	tmp := s.path + ".tmp"
	if err = os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session state")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replacing session state")
}

func (s *fileStorage) Load() (session.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return session.State{}, session.ErrNoState
	}
	if err != nil {
		return session.State{}, errors.Wrap(err, "reading session state")
	}

	var st session.State
	if err = json.Unmarshal(data, &st); err != nil {
		return session.State{}, errors.Wrap(err, "decoding session state")
	}
	return st, nil
}
