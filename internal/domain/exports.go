package domain

import (
	interfaces "artguard/internal/domain/interfaces"
	types "artguard/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	RunID           = types.RunID
	DatasetItem     = types.DatasetItem
	FoldAssignment  = types.FoldAssignment
	SplitSet        = types.SplitSet
	SplitConfig     = types.SplitConfig
	SplitManifest   = types.SplitManifest
	ImageRecord     = types.ImageRecord
	PatchRecord     = types.PatchRecord
	PatchType       = types.PatchType
	PatchDescriptor = types.PatchDescriptor
	RunKind         = types.RunKind
	RunStatus       = types.RunStatus
	RunRecord       = types.RunRecord
	Summary         = types.Summary
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RecordStore  = interfaces.RecordStore
	SplitStore   = interfaces.SplitStore
	PatchStore   = interfaces.PatchStore
	RunStore     = interfaces.RunStore
	ImageSource  = interfaces.ImageSource
	SplitService = interfaces.SplitService
	PatchService = interfaces.PatchService
)

// Constants and sentinel errors re-exported from the types subpackage.
const (
	UnknownStratum = types.UnknownStratum

	PatchCenterSquare = types.PatchCenterSquare
	PatchGrid         = types.PatchGrid

	RunKindSplit = types.RunKindSplit
	RunKindPatch = types.RunKindPatch

	RunRunning             = types.RunRunning
	RunCompleted           = types.RunCompleted
	RunCompletedWithErrors = types.RunCompletedWithErrors
	RunFailed              = types.RunFailed
)

var (
	ErrInvalidConfiguration = types.ErrInvalidConfiguration
	ErrImageTooSmall        = types.ErrImageTooSmall
	ErrInvalidRecord        = types.ErrInvalidRecord

	StratifyFields = types.StratifyFields
)

// ValidateItems rejects items with an empty or repeated id.
func ValidateItems(items []DatasetItem) error {
	return types.ValidateItems(items)
}

// Items projects records into dataset items stratified on the named field.
func Items(records []ImageRecord, stratifyOn string) ([]DatasetItem, error) {
	return types.Items(records, stratifyOn)
}
