// Package storage persists game state snapshots as JSON documents
// behind a small key-value store interface.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a key-value blob store. Load reports found=false for a key
// that was never saved, which callers treat as first-run defaults.
type Store interface {
	Load(key string) (data []byte, found bool, err error)
	Save(key string, data []byte) error
}

// FileStore keeps each key as <dir>/<key>.json
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return data, true, nil
}

// Save writes through a temp file and renames, so a crash mid-write
// never leaves a truncated document behind.
func (fs *FileStore) Save(key string, data []byte) error {
	tmp, err := os.CreateTemp(fs.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := os.Rename(tmpName, fs.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and ephemeral sessions
type MemStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (ms *MemStore) Load(key string) ([]byte, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	data, ok := ms.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (ms *MemStore) Save(key string, data []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	ms.data[key] = cp
	return nil
}
