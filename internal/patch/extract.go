package patch

import (
	"fmt"
	"image"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"artguard/internal/domain"
)

// DefaultCanonicalSize is the side of every emitted patch.
const DefaultCanonicalSize = 256

// Extractor cuts images into canonical patches. The zero value is not usable;
// construct with NewExtractor.
type Extractor struct {
	size   int
	newID  func() string
	interp draw.Interpolator
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCanonicalSize sets the output side of every patch.
func WithCanonicalSize(size int) Option {
	return func(e *Extractor) { e.size = size }
}

// WithIDFunc replaces the UUIDv4 patch id generator.
func WithIDFunc(f func() string) Option {
	return func(e *Extractor) {
		if f != nil {
			e.newID = f
		}
	}
}

// WithInterpolator replaces the Catmull-Rom resampling filter.
func WithInterpolator(in draw.Interpolator) Option {
	return func(e *Extractor) {
		if in != nil {
			e.interp = in
		}
	}
}

// NewExtractor returns an Extractor with defaults overridden by opts.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		size:   DefaultCanonicalSize,
		newID:  uuid.NewString,
		interp: draw.CatmullRom,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CanonicalSize reports the configured output side.
func (e *Extractor) CanonicalSize() int { return e.size }

// Extract cuts img into 1 + GridN² patches with the default filter and ids.
func Extract(img image.Image, canonicalSize int) ([]domain.PatchDescriptor, error) {
	return NewExtractor(WithCanonicalSize(canonicalSize)).Extract(img)
}

// Extract cuts img into its center square and grid cells, each resampled to
// the canonical size. Offsets are relative to img.Bounds().Min.
func (e *Extractor) Extract(img image.Image) ([]domain.PatchDescriptor, error) {
	if e.size <= 0 {
		return nil, fmt.Errorf("%w: canonical size must be positive, got %d", ErrInvalidConfiguration, e.size)
	}
	b := img.Bounds()
	g, err := Plan(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	regions := g.Regions()
	out := make([]domain.PatchDescriptor, 0, len(regions))
	for _, r := range regions {
		out = append(out, domain.PatchDescriptor{
			ID:     e.newID(),
			Type:   r.Type,
			X:      r.Rect.Min.X,
			Y:      r.Rect.Min.Y,
			Width:  r.Rect.Dx(),
			Height: r.Rect.Dy(),
			Pixels: e.resample(img, r.Rect.Add(b.Min)),
		})
	}
	return out, nil
}

func (e *Extractor) resample(img image.Image, src image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, e.size, e.size))
	e.interp.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// Interpolator resolves a filter name used on the command line.
func Interpolator(name string) (draw.Interpolator, error) {
	switch name {
	case "", "catmullrom", "bicubic":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approxbilinear":
		return draw.ApproxBiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidConfiguration, name)
	}
}
