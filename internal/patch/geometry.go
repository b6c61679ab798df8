package patch

import (
	"fmt"
	"image"

	"artguard/internal/domain"
)

// Region is one patch rectangle in original-image coordinates.
type Region struct {
	Type domain.PatchType
	Rect image.Rectangle
}

// Geometry describes how one image is cut into patches.
type Geometry struct {
	Width, Height int // source image size
	Depth         int // p
	GridN         int // 2^p cells per side
	Left, Top     int // offset of the center square
	Side          int // side of the center square
	Cell          int // side of one grid cell
}

// ChooseDepth returns the grid depth p for an image of the given size.
// Images whose smaller side is at most 512 also get p = 1.
func ChooseDepth(width, height int) int {
	m := min(width, height)
	switch {
	case m > 1024:
		return 2
	case m > 512:
		return 1
	default:
		return 1
	}
}

// GridN is the number of cells per side at depth p.
func GridN(p int) int { return 1 << p }

// Plan computes the crop and grid geometry for a width x height image.
func Plan(width, height int) (Geometry, error) {
	side := min(width, height)
	p := ChooseDepth(width, height)
	n := GridN(p)
	cell := 0
	if side > 0 {
		cell = side / n
	}
	if cell <= 0 {
		return Geometry{}, fmt.Errorf("%w: %dx%d gives a %d-pixel cell on a %dx%d grid",
			ErrImageTooSmall, width, height, cell, n, n)
	}
	return Geometry{
		Width:  width,
		Height: height,
		Depth:  p,
		GridN:  n,
		Left:   (width - side) / 2,
		Top:    (height - side) / 2,
		Side:   side,
		Cell:   cell,
	}, nil
}

// Count is the number of patches the geometry yields.
func (g Geometry) Count() int { return 1 + g.GridN*g.GridN }

// Regions lists the center square followed by the grid cells in row-major
// order.
func (g Geometry) Regions() []Region {
	out := make([]Region, 0, g.Count())
	out = append(out, Region{
		Type: domain.PatchCenterSquare,
		Rect: image.Rect(g.Left, g.Top, g.Left+g.Side, g.Top+g.Side),
	})
	for row := 0; row < g.GridN; row++ {
		for col := 0; col < g.GridN; col++ {
			x := g.Left + col*g.Cell
			y := g.Top + row*g.Cell
			out = append(out, Region{
				Type: domain.PatchGrid,
				Rect: image.Rect(x, y, x+g.Cell, y+g.Cell),
			})
		}
	}
	return out
}
