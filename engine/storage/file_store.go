package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/zippy/engine/core"
)

// FileStore is a MemoryStore written back to a TOML file after every change.
type FileStore struct {
	*MemoryStore
	path string
}

// OpenFileStore loads path if it exists. A missing file is an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{MemoryStore: NewMemoryStore(), path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogDebug("no preferences at `%s`, starting empty", path)
		return s, nil
	}
	if err != nil {
		err = fmt.Errorf("func OpenFileStore - failed to read `%s`: %w", path, err)
		core.LogError("%s", err)
		return nil, err
	}
	if err := toml.Unmarshal(b, &s.doc); err != nil {
		err = fmt.Errorf("func OpenFileStore - corrupt preferences `%s`: %w: %v", path, core.ErrInvalidValue, err)
		core.LogError("%s", err)
		return nil, err
	}
	s.doc.fill()
	return s, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// save writes to a sibling temp file and renames it over the target.
func (s *FileStore) save() error {
	b, err := toml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("func save - %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("func save - %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("func save - failed to write `%s`: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("func save - failed to replace `%s`: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) SetFloat(key string, value float32) error {
	s.MemoryStore.SetFloat(key, value)
	return s.save()
}

func (s *FileStore) SetInt(key string, value int) error {
	s.MemoryStore.SetInt(key, value)
	return s.save()
}

func (s *FileStore) SetBool(key string, value bool) error {
	s.MemoryStore.SetBool(key, value)
	return s.save()
}

func (s *FileStore) SetString(key string, value string) error {
	s.MemoryStore.SetString(key, value)
	return s.save()
}

func (s *FileStore) Delete(key string) error {
	s.MemoryStore.Delete(key)
	return s.save()
}
