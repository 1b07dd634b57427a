package credstore

import (
	"encoding/json"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store as a single JSON document on disk. Every write
// replaces the file atomically (write to a temp file, then rename), so a
// crash mid-write leaves the previous document intact.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore opens (or creates) the store at path. The parent directory is
// created if it does not exist. An existing document is loaded eagerly so
// that Get stays a pure in-memory read.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Join(ErrOpenFailed, err)
	}

	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Join(ErrOpenFailed, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, errors.Join(ErrCorruptData, err)
		}
	}

	return s, nil
}

// Get returns the value for key, and whether it was present.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the document.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev := s.values[key]
	s.values[key] = value
	if err := s.persist(); err != nil {
		// Roll back the in-memory map so memory and disk stay in sync.
		if hadPrev {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// Remove deletes key and persists the document.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.values[key]
	if !ok {
		return nil
	}
	delete(s.values, key)
	if err := s.persist(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

// persist writes the document atomically. Caller must hold s.mu.
func (s *FileStore) persist() error {
	snapshot := make(map[string]string, len(s.values))
	maps.Copy(snapshot, s.values)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}
