// internal/persist/store.go
package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// ErrNoSavedGame is returned when there is nothing usable to resume.
var ErrNoSavedGame = errors.New("no saved game")

const (
	sessionFile  = "session"
	progressFile = "progress"
)

// Store persists the current session and the player profile.
type Store interface {
	SaveSession(snap SessionSnapshot) error
	LoadSession() (SessionSnapshot, error)
	ClearSession() error
	SaveProgress(snap ProgressSnapshot) error
	LoadProgress() (ProgressSnapshot, error)
}

// FileStore keeps one file per slot in a directory.
type FileStore struct {
	dir   string
	codec Codec
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string, codec Codec) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	if codec == nil {
		codec = JSONCodec{}
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+s.codec.Ext())
}

func (s *FileStore) SaveSession(snap SessionSnapshot) error {
	snap.Version = SnapshotVersion
	return s.write(sessionFile, snap)
}

// LoadSession returns ErrNoSavedGame when the slot is missing, corrupt or
// from an unknown layout version.
func (s *FileStore) LoadSession() (SessionSnapshot, error) {
	var snap SessionSnapshot
	if err := s.read(sessionFile, &snap); err != nil {
		return SessionSnapshot{}, err
	}
	if snap.Version != SnapshotVersion || snap.MapID == "" {
		log.Printf("Ignoring session save with version %d", snap.Version)
		return SessionSnapshot{}, ErrNoSavedGame
	}
	return snap, nil
}

func (s *FileStore) ClearSession() error {
	err := os.Remove(s.path(sessionFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session save: %w", err)
	}
	return nil
}

func (s *FileStore) SaveProgress(snap ProgressSnapshot) error {
	return s.write(progressFile, snap)
}

func (s *FileStore) LoadProgress() (ProgressSnapshot, error) {
	var snap ProgressSnapshot
	if err := s.read(progressFile, &snap); err != nil {
		return ProgressSnapshot{}, err
	}
	return snap, nil
}

// write goes through a temporary file so a crash never leaves half a save.
func (s *FileStore) write(name string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) read(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNoSavedGame
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := s.codec.Unmarshal(data, v); err != nil {
		log.Printf("Corrupt %s save (%v), starting fresh", name, err)
		return ErrNoSavedGame
	}
	return nil
}
