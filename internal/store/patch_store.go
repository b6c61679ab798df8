package store

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"path/filepath"
	"sync"

	"artguard/internal/domain"
)

const (
	patchesDirname     = "patches"
	patchRecordsFile   = "patches.json"
	defaultJPEGQuality = 95
)

var errNoPixels = errors.New("store: patch has no pixels")

// PatchFileStore writes patch pixels as JPEG and keeps one records file per
// source image.
type PatchFileStore struct {
	dir     string
	quality int
	now     func() int64
	mu      sync.Mutex
}

// NewPatchFileStore returns a PatchFileStore rooted at dir. now stamps
// CreatedAt on new records.
func NewPatchFileStore(dir string, now func() int64) *PatchFileStore {
	return &PatchFileStore{dir: dir, quality: defaultJPEGQuality, now: now}
}

func (s *PatchFileStore) imageDir(imageID string) string {
	return filepath.Join(s.dir, patchesDirname, filepath.Base(imageID))
}

// SavePatch encodes the patch pixels and returns the record describing them.
// The record is not persisted until SavePatchRecords.
func (s *PatchFileStore) SavePatch(imageID string, p domain.PatchDescriptor) (domain.PatchRecord, error) {
	if p.Pixels == nil {
		return domain.PatchRecord{}, fmt.Errorf("%w: %s", errNoPixels, p.ID)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, p.Pixels, &jpeg.Options{Quality: s.quality}); err != nil {
		return domain.PatchRecord{}, fmt.Errorf("encoding patch %s: %w", p.ID, err)
	}
	path := filepath.Join(s.imageDir(imageID), p.Type.String(), filepath.Base(p.ID)+".jpg")
	if err := writeFile(path, buf.Bytes()); err != nil {
		return domain.PatchRecord{}, err
	}
	return domain.PatchRecord{
		PatchID:     p.ID,
		ImageID:     imageID,
		PatchType:   p.Type,
		PatchPath:   path,
		PatchX:      p.X,
		PatchY:      p.Y,
		PatchWidth:  p.Width,
		PatchHeight: p.Height,
		CreatedAt:   s.now(),
	}, nil
}

// SavePatchRecords appends records to the image's records file.
func (s *PatchFileStore) SavePatchRecords(imageID string, records []domain.PatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.imageDir(imageID), patchRecordsFile)
	var all []domain.PatchRecord
	if err := readJSON(path, &all); err != nil {
		return err
	}
	all = append(all, records...)
	return writeJSON(path, all)
}

// ListPatchRecords returns the records of imageID in the order they were saved.
func (s *PatchFileStore) ListPatchRecords(imageID string) ([]domain.PatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []domain.PatchRecord
	if err := readJSON(filepath.Join(s.imageDir(imageID), patchRecordsFile), &all); err != nil {
		return nil, err
	}
	return all, nil
}

// Compile-time assertion that PatchFileStore implements domain.PatchStore.
var _ domain.PatchStore = (*PatchFileStore)(nil)
