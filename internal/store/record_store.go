package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"artguard/internal/domain"
)

const recordsFilename = "records.json"

// RecordFileStore persists image records to disk, keyed by image id.
type RecordFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewRecordFileStore returns a RecordFileStore rooted at dir.
func NewRecordFileStore(dir string) *RecordFileStore {
	return &RecordFileStore{dir: dir}
}

func (s *RecordFileStore) path() string { return filepath.Join(s.dir, recordsFilename) }

func (s *RecordFileStore) load() (map[string]domain.ImageRecord, error) {
	records := map[string]domain.ImageRecord{}
	if err := readJSON(s.path(), &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", recordsFilename, err)
	}
	return records, nil
}

// SaveRecords validates and upserts records. Nothing is written if any
// record is invalid.
func (s *RecordFileStore) SaveRecords(records []domain.ImageRecord) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	for _, r := range records {
		all[r.ImageID] = r
	}
	return writeJSON(s.path(), all)
}

// ListRecords returns the records of datasetVersion sorted by id, or every
// record when datasetVersion is empty.
func (s *RecordFileStore) ListRecords(datasetVersion string) ([]domain.ImageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ImageRecord, 0, len(all))
	for _, r := range all {
		if datasetVersion == "" || r.DatasetVersion == datasetVersion {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ImageID < out[j].ImageID })
	return out, nil
}

// LoadRecord retrieves one record.
func (s *RecordFileStore) LoadRecord(imageID string) (domain.ImageRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return domain.ImageRecord{}, false, err
	}
	r, ok := all[imageID]
	return r, ok, nil
}

// UpdateFoldAssignment stamps run id, fold id and (when non-empty) dataset
// version onto every assigned record. Unknown ids get a new bare record.
func (s *RecordFileStore) UpdateFoldAssignment(
	runID domain.RunID,
	datasetVersion string,
	assignment domain.FoldAssignment,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	for id, fold := range assignment {
		r, ok := all[id]
		if !ok {
			r = domain.ImageRecord{ImageID: id}
		}
		r.FoldID = &fold
		r.RunID = runID
		if datasetVersion != "" {
			r.DatasetVersion = datasetVersion
		}
		all[id] = r
	}
	return writeJSON(s.path(), all)
}

// Compile-time assertion that RecordFileStore implements domain.RecordStore.
var _ domain.RecordStore = (*RecordFileStore)(nil)
