package interfaces

import domaintypes "artguard/internal/domain/types"

// RecordStore persists image metadata records.
type RecordStore interface {
	SaveRecords(records []domaintypes.ImageRecord) error
	// ListRecords returns records of datasetVersion, or all records when it is empty.
	ListRecords(datasetVersion string) ([]domaintypes.ImageRecord, error)
	LoadRecord(imageID string) (domaintypes.ImageRecord, bool, error)
	UpdateFoldAssignment(
		runID domaintypes.RunID,
		datasetVersion string,
		assignment domaintypes.FoldAssignment,
	) error
}

// SplitStore keeps split manifests by run.
type SplitStore interface {
	SaveManifest(manifest domaintypes.SplitManifest) error
	LoadManifest(runID domaintypes.RunID) (domaintypes.SplitManifest, bool, error)
}

// PatchStore writes patch pixels and their records.
type PatchStore interface {
	SavePatch(imageID string, patch domaintypes.PatchDescriptor) (domaintypes.PatchRecord, error)
	SavePatchRecords(imageID string, records []domaintypes.PatchRecord) error
	ListPatchRecords(imageID string) ([]domaintypes.PatchRecord, error)
}

// RunStore keeps run records.
type RunStore interface {
	SaveRun(run domaintypes.RunRecord) error
	LoadRun(runID domaintypes.RunID) (domaintypes.RunRecord, bool, error)
}
