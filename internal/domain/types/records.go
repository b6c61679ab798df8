package types

import (
	"fmt"
	"strings"
)

// ImageRecord is the metadata kept for every source image.
type ImageRecord struct {
	ImageID           string `json:"image_id"`
	ImageName         string `json:"image_name,omitempty"`
	ImagePath         string `json:"image_path,omitempty"`
	ImageWidth        int    `json:"image_width,omitempty"`
	ImageHeight       int    `json:"image_height,omitempty"`
	Label             string `json:"label,omitempty"`
	Sublabel          string `json:"sublabel,omitempty"`
	Split             string `json:"split,omitempty"`
	AttributedCreator string `json:"attributed_creator,omitempty"`
	ActualCreator     string `json:"actual_creator,omitempty"`
	DatasetVersion    string `json:"dataset_version,omitempty"`
	RunID             RunID  `json:"run_id,omitempty"`
	FoldID            *int   `json:"fold_id,omitempty"`
	CreatedAt         int64  `json:"created_at,omitempty"`
}

// StratifyFields lists the record fields a split may be stratified on.
var StratifyFields = []string{
	"label",
	"sublabel",
	"split",
	"attributed_creator",
	"actual_creator",
	"dataset_version",
}

// Validate checks the invariants every stored record must satisfy.
func (r ImageRecord) Validate() error {
	if strings.TrimSpace(r.ImageID) == "" {
		return fmt.Errorf("%w: image_id is required", ErrInvalidRecord)
	}
	if r.ImageWidth < 0 || r.ImageHeight < 0 {
		return fmt.Errorf("%w: %s has negative dimensions %dx%d",
			ErrInvalidRecord, r.ImageID, r.ImageWidth, r.ImageHeight)
	}
	return nil
}

// Item projects the record into a DatasetItem stratified on the named field.
func (r ImageRecord) Item(stratifyOn string) (DatasetItem, error) {
	var s string
	switch stratifyOn {
	case "label":
		s = r.Label
	case "sublabel":
		s = r.Sublabel
	case "split":
		s = r.Split
	case "attributed_creator":
		s = r.AttributedCreator
	case "actual_creator":
		s = r.ActualCreator
	case "dataset_version":
		s = r.DatasetVersion
	default:
		return DatasetItem{}, fmt.Errorf("%w: cannot stratify on %q (want one of %s)",
			ErrInvalidConfiguration, stratifyOn, strings.Join(StratifyFields, ", "))
	}
	return DatasetItem{ID: r.ImageID, Stratum: s}, nil
}

// Items projects every record, failing on the first bad record, duplicate
// id or unknown field.
func Items(records []ImageRecord, stratifyOn string) ([]DatasetItem, error) {
	out := make([]DatasetItem, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		it, err := r.Item(stratifyOn)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := ValidateItems(out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatchRecord is the persisted form of one extracted patch.
type PatchRecord struct {
	PatchID     string    `json:"patch_id"`
	ImageID     string    `json:"image_id"`
	PatchType   PatchType `json:"patch_type"`
	PatchPath   string    `json:"patch_path"`
	PatchX      int       `json:"patch_x"`
	PatchY      int       `json:"patch_y"`
	PatchWidth  int       `json:"patch_width"`
	PatchHeight int       `json:"patch_height"`
	CreatedAt   int64     `json:"created_at"`
}
