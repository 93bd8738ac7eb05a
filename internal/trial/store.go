package trial

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const usageFile = "trial_usage.json"

// FileStore persists usage counters as one string-keyed JSON object per
// client in a single file under dir.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ CountStore = (*FileStore)(nil)

// NewFileStore returns a FileStore writing to dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{path: filepath.Join(dir, usageFile)}, nil
}

func (s *FileStore) load() (map[string]Usage, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]Usage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", usageFile, err)
	}

	var all map[string]Usage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", usageFile, err)
	}
	if all == nil {
		all = map[string]Usage{}
	}

	return all, nil
}

// Get returns the usage counters of one client. An unknown client has no
// counters.
func (s *FileStore) Get(clientID string) (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	return all[clientID], nil
}

// Put replaces the usage counters of one client.
func (s *FileStore) Put(clientID string, usage Usage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}

	all[clientID] = usage

	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", usageFile, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", usageFile, err)
	}

	return os.Rename(tmp, s.path)
}
