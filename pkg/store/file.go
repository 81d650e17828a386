package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// FileStore is a file-based document store for CLI applications.
// Each document is stored as a JSON file named after the document.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based document store.
// If baseDir is empty, defaults to ~/.config/arbor/trees/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "arbor", "trees")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save creates or overwrites the document under the given name.
// An existing record keeps its id and creation time.
func (s *FileStore) Save(ctx context.Context, name string, doc treefile.Document) (Record, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		Document:  doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rec.Document.Name = name

	if prev, err := s.read(name); err == nil {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "marshal record")
	}
	if err := os.WriteFile(s.recordPath(name), data, 0600); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStorage, err, "write record %q", name)
	}
	return rec, nil
}

// Load retrieves the document stored under the given name.
func (s *FileStore) Load(ctx context.Context, name string) (Record, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return Record{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(name)
}

func (s *FileStore) read(name string) (Record, error) {
	data, err := os.ReadFile(s.recordPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", name)
		}
		return Record{}, errors.Wrap(errors.ErrCodeStorage, err, "read record %q", name)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeStorage, err, "parse record %q", name)
	}
	return rec, nil
}

// List returns the records of all stored documents, sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read store dir")
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		rec, err := s.read(name)
		if err != nil {
			// Skip unreadable entries rather than failing the listing.
			continue
		}
		rec.Document.Nodes = nil
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Delete removes the document stored under the given name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "remove record %q", name)
	}
	return nil
}

// Close does nothing for file stores.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
