package store

import (
	"path/filepath"
	"sync"

	"artguard/internal/domain"
)

const runsFilename = "runs.json"

// RunFileStore persists run records to disk.
type RunFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewRunFileStore returns a RunFileStore rooted at dir.
func NewRunFileStore(dir string) *RunFileStore {
	return &RunFileStore{dir: dir}
}

// SaveRun writes a run record, replacing any previous one with the same id.
func (s *RunFileStore) SaveRun(run domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, runsFilename)
	runs := map[domain.RunID]domain.RunRecord{}
	if err := readJSON(path, &runs); err != nil {
		return err
	}
	runs[run.RunID] = run
	return writeJSON(path, runs)
}

// LoadRun retrieves a stored run record.
func (s *RunFileStore) LoadRun(runID domain.RunID) (domain.RunRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, runsFilename)
	runs := map[domain.RunID]domain.RunRecord{}
	if err := readJSON(path, &runs); err != nil {
		return domain.RunRecord{}, false, err
	}
	run, ok := runs[runID]
	return run, ok, nil
}

// Compile-time assertion that RunFileStore implements domain.RunStore.
var _ domain.RunStore = (*RunFileStore)(nil)
