// Package localfile implements the storage contract on top of one JSON
// blob per entity kind.
//
// Every operation reads the whole blob, filters or mutates it in memory and
// rewrites the whole file. Date fields round-trip as RFC3339 strings through
// encoding/json. In-process access is serialized with a mutex and files are
// replaced atomically via a temporary file and rename; concurrent writers
// from other processes still race with last-write-wins on the whole blob.
package localfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/financetrackr/backend/internal/models"
	"github.com/financetrackr/backend/internal/storage"
	"github.com/google/uuid"
)

const (
	transactionsFile = "transactions.json"
	budgetsFile      = "budgets.json"
	goalsFile        = "goals.json"
)

// Store persists records as JSON files in a directory.
type Store struct {
	mu  sync.Mutex
	dir string
}

var _ storage.Storage = (*Store)(nil)

// New returns a Store writing to the given directory, creating it if
// needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Close implements the storage contract. There is nothing to release.
func (s *Store) Close() error {
	return nil
}

// load reads the blob at path into a slice of records. A missing file is an
// empty store.
func load[R any](path string) ([]R, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var records []R
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return records, nil
}

// save rewrites the whole blob. The temporary-file-and-rename dance keeps a
// crashed write from truncating the store.
func save[R any](path string, records []R) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return os.Rename(tmp, path)
}

// newID returns a time-ordered UUID, the locally generated counterpart of a
// store-assigned id: a millisecond timestamp followed by random bits.
func newID() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generating id: %w", err)
	}
	return id, nil
}

func now() time.Time {
	return time.Now().In(time.UTC)
}

func stamp(m *models.DefaultModel) error {
	if m.ID == uuid.Nil {
		id, err := newID()
		if err != nil {
			return err
		}
		m.ID = id
	}

	ts := now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = ts
	}
	m.UpdatedAt = ts

	return nil
}
