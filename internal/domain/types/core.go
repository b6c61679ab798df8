package types

import (
	"fmt"
	"strings"
)

// RunID identifies one split or patch run.
type RunID string

// String returns the string form of the run identifier.
func (id RunID) String() string { return string(id) }

// UnknownStratum is the stratum assigned to items without a label.
const UnknownStratum = "UNKNOWN"

// DatasetItem is the unit the split pipeline partitions.
type DatasetItem struct {
	ID      string `json:"image_id"`
	Stratum string `json:"stratum,omitempty"`
}

// StratumOrUnknown returns the item's stratum, or UnknownStratum when empty.
func (it DatasetItem) StratumOrUnknown() string {
	if it.Stratum == "" {
		return UnknownStratum
	}
	return it.Stratum
}

// ValidateItems checks that every item has an id and that no id repeats.
// The split algorithms assume both.
func ValidateItems(items []DatasetItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return fmt.Errorf("%w: item %d has no image_id", ErrInvalidRecord, i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate image_id %q", ErrInvalidRecord, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// FoldAssignment maps an item id to its outer fold in [0, k_folds).
type FoldAssignment map[string]int

// SplitSet is the train/val/test partition of one outer fold.
type SplitSet struct {
	Train []string `json:"train"`
	Val   []string `json:"val"`
	Test  []string `json:"test"`
}
