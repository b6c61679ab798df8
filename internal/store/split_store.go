package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"artguard/internal/domain"
)

const splitsFilename = "splits.json"

// SplitFileStore persists one split manifest per run.
type SplitFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSplitFileStore returns a SplitFileStore rooted at dir.
func NewSplitFileStore(dir string) *SplitFileStore {
	return &SplitFileStore{dir: dir}
}

func (s *SplitFileStore) path(runID domain.RunID) string {
	return filepath.Join(s.dir, "runs", filepath.Base(runID.String()), splitsFilename)
}

// SaveManifest writes the manifest under its run id.
func (s *SplitFileStore) SaveManifest(manifest domain.SplitManifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path(manifest.RunID), manifest)
}

// LoadManifest reads the manifest of runID.
func (s *SplitFileStore) LoadManifest(runID domain.RunID) (domain.SplitManifest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path(runID))
	if err != nil || b == nil {
		return domain.SplitManifest{}, false, err
	}
	var m domain.SplitManifest
	if err := json.Unmarshal(b, &m); err != nil {
		return domain.SplitManifest{}, false, err
	}
	return m, true, nil
}

// Compile-time assertion that SplitFileStore implements domain.SplitStore.
var _ domain.SplitStore = (*SplitFileStore)(nil)
