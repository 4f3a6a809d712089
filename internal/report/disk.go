package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore writes records as JSON files to a directory. When Dir is empty
// a temp directory is created lazily on first use.
type DiskStore struct {
	mu  sync.Mutex
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir. Pass "" for a temp directory.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save writes a record as a JSON file to disk.
func (s *DiskStore) Save(rec *Record) error {
	dir, err := s.ensureDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling record %s: %w", rec.ID, err)
	}
	path := filepath.Join(dir, rec.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", rec.ID, err)
	}
	return nil
}

// Load reads a record from disk.
func (s *DiskStore) Load(runID string) (*Record, error) {
	if runID != filepath.Base(runID) {
		return nil, fmt.Errorf("invalid run id %q", runID)
	}
	dir, err := s.ensureDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, runID+".json"))
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", runID, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshalling record %s: %w", runID, err)
	}
	return &rec, nil
}

func (s *DiskStore) ensureDir() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating record directory: %w", err)
		}
		return s.dir, nil
	}
	dir, err := os.MkdirTemp("", "witness-build-runs-*")
	if err != nil {
		return "", fmt.Errorf("creating record directory: %w", err)
	}
	s.dir = dir
	return dir, nil
}
