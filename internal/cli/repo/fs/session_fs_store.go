package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"GoMFiles/internal/cli/model"
	"GoMFiles/internal/cli/repo"

	"github.com/spf13/afero"
)

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("no stored session")

// SessionFSStore keeps the session as a JSON file readable only by the owner.
type SessionFSStore struct {
	Path string
	Fs   afero.Fs
}

var _ repo.SessionStore = (*SessionFSStore)(nil)

// NewSessionFSStore returns a store backed by the OS file system.
func NewSessionFSStore(path string) *SessionFSStore {
	return &SessionFSStore{Path: path, Fs: afero.NewOsFs()}
}

func (s *SessionFSStore) fs() afero.Fs {
	if s.Fs == nil {
		return afero.NewOsFs()
	}
	return s.Fs
}

// Save writes the session, creating the parent directory if needed.
func (s *SessionFSStore) Save(sess model.Session) error {
	if s.Path == "" {
		return errors.New("session file path is empty")
	}
	if sess.Token == "" {
		return errors.New("empty token")
	}
	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now().UTC()
	}
	if err := s.fs().MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs(), s.Path, b, 0o600)
}

// Load reads the session. A missing or empty file yields ErrNoSession.
func (s *SessionFSStore) Load() (*model.Session, error) {
	b, err := afero.ReadFile(s.fs(), s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrNoSession
	}
	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear removes the session file. Clearing twice is not an error.
func (s *SessionFSStore) Clear() error {
	err := s.fs().Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
