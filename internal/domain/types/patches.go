package types

import (
	"image"
)

// PatchType distinguishes the whole center square from its grid cells.
type PatchType string

const (
	PatchCenterSquare PatchType = "center_square"
	PatchGrid         PatchType = "grid"
)

// String returns the string form of the patch type.
func (t PatchType) String() string { return string(t) }

// PatchDescriptor is one canonical patch. X, Y, Width and Height are in the
// coordinates of the original image, before the resize to canonical size.
type PatchDescriptor struct {
	ID     string      `json:"patch_id"`
	Type   PatchType   `json:"patch_type"`
	X      int         `json:"patch_x"`
	Y      int         `json:"patch_y"`
	Width  int         `json:"patch_width"`
	Height int         `json:"patch_height"`
	Pixels *image.RGBA `json:"-"`
}

// Rect returns the patch region in original-image coordinates.
func (d PatchDescriptor) Rect() image.Rectangle {
	return image.Rect(d.X, d.Y, d.X+d.Width, d.Y+d.Height)
}
