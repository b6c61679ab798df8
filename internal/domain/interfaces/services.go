package interfaces

import (
	"context"
	"image"

	domaintypes "artguard/internal/domain/types"
)

// SplitService computes and persists stratified cross-validation splits.
type SplitService interface {
	Run(
		ctx context.Context,
		runID domaintypes.RunID,
		datasetVersion string,
		cfg domaintypes.SplitConfig,
	) (domaintypes.SplitManifest, error)
	Compute(
		ctx context.Context,
		items []domaintypes.DatasetItem,
		cfg domaintypes.SplitConfig,
	) (domaintypes.FoldAssignment, map[int]domaintypes.SplitSet, error)
}

// PatchService turns images into persisted canonical patches.
type PatchService interface {
	ProcessImage(
		ctx context.Context,
		imageID string,
		img image.Image,
	) ([]domaintypes.PatchRecord, error)
	ProcessBatch(
		ctx context.Context,
		runID domaintypes.RunID,
		refs []string,
	) (domaintypes.Summary, error)
}
