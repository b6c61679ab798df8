package patch

import (
	"image"

	"golang.org/x/image/draw"
)

// DefaultMaxSide is the long-side cap applied to uploads for display.
const DefaultMaxSide = 2048

// Normalize returns an opaque RGBA copy of img anchored at (0, 0), with any
// transparency composited onto white. When maxSide > 0 and the long side
// exceeds it, the copy is downscaled preserving aspect ratio.
func Normalize(img image.Image, maxSide int) *image.RGBA {
	b := img.Bounds()
	flat := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, b.Min, draw.Over)

	long := max(b.Dx(), b.Dy())
	if maxSide <= 0 || long <= maxSide {
		return flat
	}
	ratio := float64(maxSide) / float64(long)
	w := max(1, int(float64(b.Dx())*ratio))
	h := max(1, int(float64(b.Dy())*ratio))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), flat, flat.Bounds(), draw.Src, nil)
	return dst
}
