package split

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"artguard/internal/domain"
	"artguard/internal/hashkey"
	kfold "artguard/internal/split"
	"artguard/internal/workpool"
)

// DefaultConfig returns the split parameters used when none are given.
func DefaultConfig() domain.SplitConfig {
	return domain.SplitConfig{
		KFolds:        5,
		OuterSeed:     17,
		InnerSeed:     99,
		ValFraction:   0.2,
		StratifyOn:    "sublabel",
		HashAlgorithm: hashkey.AlgorithmSHA256,
	}
}

// Service computes splits and persists their results.
type Service struct {
	records domain.RecordStore
	splits  domain.SplitStore
	runs    domain.RunStore
	log     *slog.Logger
	workers int
	now     func() time.Time
}

// New constructs a split Service. workers <= 0 uses one worker per CPU.
func New(
	records domain.RecordStore,
	splits domain.SplitStore,
	runs domain.RunStore,
	logger *slog.Logger,
	workers int,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		records: records,
		splits:  splits,
		runs:    runs,
		log:     logger.With("component", "split"),
		workers: workers,
		now:     time.Now,
	}
}

// Compute assigns folds to items and builds every fold's SplitSet. Folds are
// computed concurrently; the result does not depend on the worker count.
func (s *Service) Compute(
	ctx context.Context,
	items []domain.DatasetItem,
	cfg domain.SplitConfig,
) (domain.FoldAssignment, map[int]domain.SplitSet, error) {
	key, err := validate(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateItems(items); err != nil {
		return nil, nil, err
	}
	splitter := kfold.New(key)

	assignment, err := splitter.AssignFolds(items, cfg.KFolds, cfg.OuterSeed)
	if err != nil {
		return nil, nil, err
	}

	var (
		mu    sync.Mutex
		folds = make(map[int]domain.SplitSet, cfg.KFolds)
		errs  = make([]error, cfg.KFolds)
	)
	err = workpool.Each(ctx, s.workers, cfg.KFolds, func(_ context.Context, fold int) {
		set, err := splitter.Split(items, assignment, fold, cfg.InnerSeed, cfg.ValFraction)
		if err != nil {
			errs[fold] = err
			return
		}
		s.log.Debug("fold split",
			"fold", fold, "train", len(set.Train), "val", len(set.Val), "test", len(set.Test))
		mu.Lock()
		folds[fold] = set
		mu.Unlock()
	})
	if err != nil {
		return nil, nil, err
	}
	for fold, err := range errs {
		if err != nil {
			return nil, nil, fmt.Errorf("splitting fold %d: %w", fold, err)
		}
	}
	return assignment, folds, nil
}

// Run splits the stored records of datasetVersion (every record when empty),
// writes the fold ids back onto them and saves a manifest and run record.
func (s *Service) Run(
	ctx context.Context,
	runID domain.RunID,
	datasetVersion string,
	cfg domain.SplitConfig,
) (domain.SplitManifest, error) {
	if _, err := validate(cfg); err != nil {
		return domain.SplitManifest{}, err
	}

	started := s.now().Unix()
	run := domain.RunRecord{
		RunID:     runID,
		Kind:      domain.RunKindSplit,
		Status:    domain.RunRunning,
		CreatedAt: started,
		UpdatedAt: started,
	}
	if err := s.runs.SaveRun(run); err != nil {
		return domain.SplitManifest{}, fmt.Errorf("saving run %s: %w", runID, err)
	}

	manifest, err := s.run(ctx, runID, datasetVersion, cfg)
	run.UpdatedAt = s.now().Unix()
	if err != nil {
		run.Status = domain.RunFailed
		if serr := s.runs.SaveRun(run); serr != nil {
			s.log.Warn("saving failed run", "run_id", runID, "err", serr)
		}
		s.log.Error("split run failed", "run_id", runID, "err", err)
		return domain.SplitManifest{}, err
	}

	n := len(manifest.Assignment)
	summary := domain.Summary{Total: n, Processed: n}
	run.Status = summary.Status()
	run.Summary = &summary
	if err := s.runs.SaveRun(run); err != nil {
		return domain.SplitManifest{}, fmt.Errorf("saving run %s: %w", runID, err)
	}
	s.log.Info("split run completed",
		"run_id", runID, "items", n, "k_folds", cfg.KFolds, "fingerprint", manifest.Fingerprint)
	return manifest, nil
}

func (s *Service) run(
	ctx context.Context,
	runID domain.RunID,
	datasetVersion string,
	cfg domain.SplitConfig,
) (domain.SplitManifest, error) {
	records, err := s.records.ListRecords(datasetVersion)
	if err != nil {
		return domain.SplitManifest{}, fmt.Errorf("listing records: %w", err)
	}
	items, err := domain.Items(records, cfg.StratifyOn)
	if err != nil {
		return domain.SplitManifest{}, err
	}
	s.log.Debug("records loaded", "run_id", runID, "records", len(records))

	assignment, folds, err := s.Compute(ctx, items, cfg)
	if err != nil {
		return domain.SplitManifest{}, err
	}
	if err := s.records.UpdateFoldAssignment(runID, datasetVersion, assignment); err != nil {
		return domain.SplitManifest{}, fmt.Errorf("updating fold ids: %w", err)
	}

	manifest := domain.SplitManifest{
		RunID:          runID,
		DatasetVersion: datasetVersion,
		Config:         cfg,
		Assignment:     assignment,
		Folds:          folds,
		Fingerprint:    Fingerprint(items, cfg),
		CreatedAt:      s.now().Unix(),
	}
	if err := s.splits.SaveManifest(manifest); err != nil {
		return domain.SplitManifest{}, fmt.Errorf("saving manifest: %w", err)
	}
	return manifest, nil
}

// Fingerprint identifies the inputs of a split: two runs with the same
// fingerprint produce the same assignment and folds.
func Fingerprint(items []domain.DatasetItem, cfg domain.SplitConfig) string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID + "\x00" + it.StratumOrUnknown()
	}
	algo := cfg.HashAlgorithm
	if algo == "" {
		algo = hashkey.AlgorithmSHA256
	}
	return hashkey.Fingerprint(ids,
		strconv.Itoa(cfg.KFolds),
		strconv.FormatInt(cfg.OuterSeed, 10),
		strconv.FormatInt(cfg.InnerSeed, 10),
		strconv.FormatFloat(cfg.ValFraction, 'g', -1, 64),
		algo,
	)
}

func validate(cfg domain.SplitConfig) (hashkey.Func, error) {
	if err := kfold.ValidateFolds(cfg.KFolds); err != nil {
		return nil, err
	}
	if err := kfold.ValidateValFraction(cfg.ValFraction); err != nil {
		return nil, err
	}
	key, err := hashkey.Lookup(cfg.HashAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}
	return key, nil
}

// Compile-time assertion that Service implements domain.SplitService.
var _ domain.SplitService = (*Service)(nil)
