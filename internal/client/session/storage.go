package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is durable key/value storage for the client.
type Storage interface {
	// Get returns ok=false when key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Remove is a no-op for an absent key.
	Remove(key string) error
}

// FileStorage keeps one 0600 file per key under Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.Dir, key)
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes through a temp file and rename so readers never see a partial value.
func (f *FileStorage) Set(key, value string) error {
	if err := os.MkdirAll(f.Dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, "."+key+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) Remove(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
