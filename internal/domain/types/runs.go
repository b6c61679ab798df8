package types

// RunKind names the pipeline a run belongs to.
type RunKind string

const (
	RunKindSplit RunKind = "split"
	RunKindPatch RunKind = "patch"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	RunRunning             RunStatus = "running"
	RunCompleted           RunStatus = "completed"
	RunCompletedWithErrors RunStatus = "completed_with_errors"
	RunFailed              RunStatus = "failed"
)

// Summary counts the outcome of a batch.
type Summary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
	Patches   int `json:"patches"`
}

// Status derives the final run status from the counts.
func (s Summary) Status() RunStatus {
	if s.Errors > 0 {
		return RunCompletedWithErrors
	}
	return RunCompleted
}

// RunRecord tracks one invocation of a pipeline.
type RunRecord struct {
	RunID     RunID     `json:"run_id"`
	Kind      RunKind   `json:"kind"`
	Status    RunStatus `json:"status"`
	CreatedAt int64     `json:"created_at"`
	UpdatedAt int64     `json:"updated_at"`
	Summary   *Summary  `json:"summary,omitempty"`
}

// SplitConfig holds every parameter that determines a split.
type SplitConfig struct {
	KFolds        int     `json:"k_folds"`
	OuterSeed     int64   `json:"outer_seed"`
	InnerSeed     int64   `json:"inner_seed"`
	ValFraction   float64 `json:"val_fraction"`
	StratifyOn    string  `json:"stratify_on"`
	HashAlgorithm string  `json:"hash_algorithm"`
}

// SplitManifest is everything needed to reproduce or consume a split run.
type SplitManifest struct {
	RunID          RunID            `json:"run_id"`
	DatasetVersion string           `json:"dataset_version,omitempty"`
	Config         SplitConfig      `json:"config"`
	Assignment     FoldAssignment   `json:"assignment"`
	Folds          map[int]SplitSet `json:"folds"`
	Fingerprint    string           `json:"fingerprint"`
	CreatedAt      int64            `json:"created_at"`
}
