package store_test

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artguard/internal/domain"
	"artguard/internal/store"
)

func clock() int64 { return 1700000000 }

func TestRecords_SaveList_OK(t *testing.T) {
	home := t.TempDir()
	var rs domain.RecordStore = store.NewRecordFileStore(home)

	require.NoError(t, rs.SaveRecords([]domain.ImageRecord{
		{ImageID: "b", Label: "forgery", DatasetVersion: "v1"},
		{ImageID: "a", Label: "authentic", DatasetVersion: "v1"},
		{ImageID: "c", Label: "authentic", DatasetVersion: "v2"},
	}))

	all, err := rs.ListRecords("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ImageID)
	assert.Equal(t, "c", all[2].ImageID)

	v1, err := rs.ListRecords("v1")
	require.NoError(t, err)
	require.Len(t, v1, 2)

	got, ok, err := rs.LoadRecord("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "forgery", got.Label)

	_, ok, err = rs.LoadRecord("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecords_InvalidRecord_WritesNothing(t *testing.T) {
	home := t.TempDir()
	rs := store.NewRecordFileStore(home)

	err := rs.SaveRecords([]domain.ImageRecord{{ImageID: "a"}, {ImageID: " "}})
	require.ErrorIs(t, err, domain.ErrInvalidRecord)

	all, err := rs.ListRecords("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRecords_UpdateFoldAssignment(t *testing.T) {
	home := t.TempDir()
	rs := store.NewRecordFileStore(home)
	require.NoError(t, rs.SaveRecords([]domain.ImageRecord{
		{ImageID: "a", Label: "authentic", DatasetVersion: "v0"},
	}))

	require.NoError(t, rs.UpdateFoldAssignment("run-1", "v1", domain.FoldAssignment{"a": 2, "z": 0}))

	a, ok, err := rs.LoadRecord("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, a.FoldID)
	assert.Equal(t, 2, *a.FoldID)
	assert.Equal(t, domain.RunID("run-1"), a.RunID)
	assert.Equal(t, "v1", a.DatasetVersion)
	assert.Equal(t, "authentic", a.Label)

	z, ok, err := rs.LoadRecord("z")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, *z.FoldID)

	// An empty dataset version leaves the stored one alone.
	require.NoError(t, rs.UpdateFoldAssignment("run-2", "", domain.FoldAssignment{"a": 1}))
	a, _, err = rs.LoadRecord("a")
	require.NoError(t, err)
	assert.Equal(t, "v1", a.DatasetVersion)
	assert.Equal(t, 1, *a.FoldID)
}

func TestRecords_ConcurrentSaves(t *testing.T) {
	home := t.TempDir()
	rs := store.NewRecordFileStore(home)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			assert.NoError(t, rs.SaveRecords([]domain.ImageRecord{{ImageID: id}}))
		}(i)
	}
	wg.Wait()

	all, err := rs.ListRecords("")
	require.NoError(t, err)
	assert.Len(t, all, 16)
}

func TestSplits_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var ss domain.SplitStore = store.NewSplitFileStore(home)

	m := domain.SplitManifest{
		RunID:      "run-1",
		Config:     domain.SplitConfig{KFolds: 2, OuterSeed: 17, InnerSeed: 99, ValFraction: 0.2},
		Assignment: domain.FoldAssignment{"a": 0, "b": 1},
		Folds: map[int]domain.SplitSet{
			0: {Train: []string{"b"}, Val: []string{}, Test: []string{"a"}},
			1: {Train: []string{"a"}, Val: []string{}, Test: []string{"b"}},
		},
		Fingerprint: "abc",
		CreatedAt:   clock(),
	}
	require.NoError(t, ss.SaveManifest(m))
	assert.FileExists(t, filepath.Join(home, "runs", "run-1", "splits.json"))

	got, ok, err := ss.LoadManifest("run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m, got)

	_, ok, err = ss.LoadManifest("run-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuns_SaveLoad_Replaces(t *testing.T) {
	home := t.TempDir()
	var runs domain.RunStore = store.NewRunFileStore(home)

	require.NoError(t, runs.SaveRun(domain.RunRecord{RunID: "r", Kind: domain.RunKindPatch, Status: domain.RunRunning}))
	require.NoError(t, runs.SaveRun(domain.RunRecord{
		RunID:   "r",
		Kind:    domain.RunKindPatch,
		Status:  domain.RunCompleted,
		Summary: &domain.Summary{Total: 1, Processed: 1, Patches: 5},
	}))

	got, ok, err := runs.LoadRun("r")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.RunCompleted, got.Status)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 5, got.Summary.Patches)

	_, ok, err = runs.LoadRun("other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPatches_SaveAndList(t *testing.T) {
	home := t.TempDir()
	var ps domain.PatchStore = store.NewPatchFileStore(home, clock)

	px := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			px.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	desc := domain.PatchDescriptor{ID: "p1", Type: domain.PatchGrid, X: 10, Y: 20, Width: 30, Height: 30, Pixels: px}

	rec, err := ps.SavePatch("img", desc)
	require.NoError(t, err)
	assert.Equal(t, "p1", rec.PatchID)
	assert.Equal(t, "img", rec.ImageID)
	assert.Equal(t, domain.PatchGrid, rec.PatchType)
	assert.Equal(t, 10, rec.PatchX)
	assert.Equal(t, 30, rec.PatchHeight)
	assert.Equal(t, clock(), rec.CreatedAt)
	assert.Equal(t, filepath.Join(home, "patches", "img", "grid", "p1.jpg"), rec.PatchPath)

	f, err := os.Open(rec.PatchPath)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), decoded.Bounds())

	// Nothing is listed until the records are saved.
	listed, err := ps.ListPatchRecords("img")
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, ps.SavePatchRecords("img", []domain.PatchRecord{rec}))
	require.NoError(t, ps.SavePatchRecords("img", []domain.PatchRecord{rec}))
	listed, err = ps.ListPatchRecords("img")
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestPatches_NoPixels_Fails(t *testing.T) {
	ps := store.NewPatchFileStore(t.TempDir(), clock)
	_, err := ps.SavePatch("img", domain.PatchDescriptor{ID: "p", Type: domain.PatchGrid})
	require.Error(t, err)
}
