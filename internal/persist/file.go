// Package persist implements the keyed snapshot storage behind the stores:
// the durable equivalent of the browser's local storage. Every save writes a
// whole collection as one document.
package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"boighor-storefront/internal/domain"

	"github.com/goccy/go-json"
)

type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a JSON-file-backed snapshot store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

var keyReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_", "..", "_")

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, keyReplacer.Replace(key)+".json")
}

// Save writes the document under a temp name and renames it into place so a
// reader never observes a partial write.
func (s *FileStore) Save(ctx context.Context, key string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}

	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit snapshot %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal snapshot %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}
