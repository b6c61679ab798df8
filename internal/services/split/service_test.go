package split_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artguard/internal/domain"
	"artguard/internal/hashkey"
	splitsvc "artguard/internal/services/split"
	"artguard/internal/store"
)

type fixture struct {
	records *store.RecordFileStore
	splits  *store.SplitFileStore
	runs    *store.RunFileStore
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	home := t.TempDir()
	return fixture{
		records: store.NewRecordFileStore(home),
		splits:  store.NewSplitFileStore(home),
		runs:    store.NewRunFileStore(home),
	}
}

func (f fixture) service(workers int) *splitsvc.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return splitsvc.New(f.records, f.splits, f.runs, logger, workers)
}

func seedRecords(t *testing.T, rs domain.RecordStore, n int, version string) {
	t.Helper()
	recs := make([]domain.ImageRecord, n)
	for i := range recs {
		sub := "authentic"
		if i%5 < 2 {
			sub = "forgery"
		}
		recs[i] = domain.ImageRecord{
			ImageID:        fmt.Sprintf("img-%03d", i),
			Sublabel:       sub,
			DatasetVersion: version,
		}
	}
	require.NoError(t, rs.SaveRecords(recs))
}

func TestRun_PersistsManifestFoldsAndRun(t *testing.T) {
	f := newFixture(t)
	seedRecords(t, f.records, 100, "v1")
	svc := f.service(3)

	cfg := splitsvc.DefaultConfig()
	m, err := svc.Run(context.Background(), "run-1", "v1", cfg)
	require.NoError(t, err)

	require.Len(t, m.Assignment, 100)
	require.Len(t, m.Folds, cfg.KFolds)
	assert.Equal(t, cfg, m.Config)
	assert.NotEmpty(t, m.Fingerprint)

	// 60 authentic + 40 forgery over 5 folds -> 20 per fold.
	for fold, set := range m.Folds {
		assert.Len(t, set.Test, 20, "fold %d", fold)
		// val = round(48*0.2) + round(32*0.2) = 10 + 6
		assert.Len(t, set.Val, 16, "fold %d", fold)
		assert.Len(t, set.Train, 64, "fold %d", fold)
	}

	stored, ok, err := f.splits.LoadManifest("run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m.Assignment, stored.Assignment)
	assert.Equal(t, m.Folds, stored.Folds)

	rec, ok, err := f.records.LoadRecord("img-007")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, rec.FoldID)
	assert.Equal(t, m.Assignment["img-007"], *rec.FoldID)
	assert.Equal(t, domain.RunID("run-1"), rec.RunID)

	run, ok, err := f.runs.LoadRun("run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.RunCompleted, run.Status)
	assert.Equal(t, domain.RunKindSplit, run.Kind)
	require.NotNil(t, run.Summary)
	assert.Equal(t, 100, run.Summary.Processed)
}

func TestRun_FiltersDatasetVersion(t *testing.T) {
	f := newFixture(t)
	seedRecords(t, f.records, 10, "v1")
	require.NoError(t, f.records.SaveRecords([]domain.ImageRecord{{ImageID: "other", DatasetVersion: "v2"}}))

	m, err := f.service(1).Run(context.Background(), "r", "v1", splitsvc.DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, m.Assignment, 10)
	assert.NotContains(t, m.Assignment, "other")
}

func TestRun_InvalidConfiguration_NoRunRecorded(t *testing.T) {
	f := newFixture(t)
	seedRecords(t, f.records, 10, "")

	cases := map[string]func(*domain.SplitConfig){
		"zero folds":       func(c *domain.SplitConfig) { c.KFolds = 0 },
		"val fraction one": func(c *domain.SplitConfig) { c.ValFraction = 1 },
		"unknown hash":     func(c *domain.SplitConfig) { c.HashAlgorithm = "md5" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := splitsvc.DefaultConfig()
			mutate(&cfg)
			_, err := f.service(2).Run(context.Background(), "bad", "", cfg)
			require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

			_, ok, err := f.runs.LoadRun("bad")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRun_UnknownStratifyField_MarksRunFailed(t *testing.T) {
	f := newFixture(t)
	seedRecords(t, f.records, 10, "")

	cfg := splitsvc.DefaultConfig()
	cfg.StratifyOn = "colour"
	_, err := f.service(2).Run(context.Background(), "r", "", cfg)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	run, ok, err := f.runs.LoadRun("r")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.RunFailed, run.Status)
}

func TestCompute_IndependentOfWorkerCount(t *testing.T) {
	f := newFixture(t)
	items := make([]domain.DatasetItem, 50)
	for i := range items {
		items[i] = domain.DatasetItem{ID: fmt.Sprintf("x%d", i), Stratum: []string{"a", "b", ""}[i%3]}
	}
	cfg := splitsvc.DefaultConfig()

	a1, f1, err := f.service(1).Compute(context.Background(), items, cfg)
	require.NoError(t, err)
	a8, f8, err := f.service(8).Compute(context.Background(), items, cfg)
	require.NoError(t, err)
	assert.Equal(t, a1, a8)
	assert.Equal(t, f1, f8)
}

func TestCompute_BLAKE2bDiffersFromSHA256(t *testing.T) {
	f := newFixture(t)
	items := make([]domain.DatasetItem, 40)
	for i := range items {
		items[i] = domain.DatasetItem{ID: fmt.Sprintf("x%d", i)}
	}
	cfg := splitsvc.DefaultConfig()
	sha, _, err := f.service(2).Compute(context.Background(), items, cfg)
	require.NoError(t, err)

	cfg.HashAlgorithm = hashkey.AlgorithmBLAKE2b
	b2, _, err := f.service(2).Compute(context.Background(), items, cfg)
	require.NoError(t, err)
	assert.Len(t, b2, 40)
	assert.NotEqual(t, sha, b2)
}

func TestCompute_EmptyItems(t *testing.T) {
	f := newFixture(t)
	a, folds, err := f.service(2).Compute(context.Background(), nil, splitsvc.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, a)
	require.Len(t, folds, 5)
	for _, set := range folds {
		assert.Empty(t, set.Train)
		assert.Empty(t, set.Val)
		assert.Empty(t, set.Test)
	}
}

func TestCompute_RejectsDuplicateAndEmptyIDs(t *testing.T) {
	f := newFixture(t)
	svc := f.service(2)

	dup := []domain.DatasetItem{{ID: "x", Stratum: "A"}, {ID: "x", Stratum: "B"}, {ID: "a1", Stratum: "A"}}
	_, _, err := svc.Compute(context.Background(), dup, splitsvc.DefaultConfig())
	require.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, _, err = svc.Compute(context.Background(), []domain.DatasetItem{{ID: " "}}, splitsvc.DefaultConfig())
	require.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestCompute_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := f.service(2).Compute(ctx, []domain.DatasetItem{{ID: "a"}}, splitsvc.DefaultConfig())
	require.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	items := []domain.DatasetItem{{ID: "a", Stratum: "x"}, {ID: "b"}}
	reversed := []domain.DatasetItem{items[1], items[0]}
	cfg := splitsvc.DefaultConfig()

	assert.Equal(t, splitsvc.Fingerprint(items, cfg), splitsvc.Fingerprint(reversed, cfg))

	other := cfg
	other.OuterSeed++
	assert.NotEqual(t, splitsvc.Fingerprint(items, cfg), splitsvc.Fingerprint(items, other))

	restratified := []domain.DatasetItem{{ID: "a", Stratum: "y"}, {ID: "b"}}
	assert.NotEqual(t, splitsvc.Fingerprint(items, cfg), splitsvc.Fingerprint(restratified, cfg))
}
