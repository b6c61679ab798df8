// Package patch decomposes an image into the canonical sub-images fed to the
// forgery-detection model.
//
// For every image the largest centered square is cropped and split into a
// 2^p x 2^p grid, where p depends on the smaller image side:
//
//	min(w, h) > 1024  ->  p = 2  (4x4 grid)
//	otherwise         ->  p = 1  (2x2 grid)
//
// Extraction emits the whole square first ("center_square"), then every grid
// cell in row-major order ("grid"), 1 + 4^p patches in total. Geometry is
// reported in original-image coordinates; pixels are resampled to a fixed
// canonical size (256 by default) with a Catmull-Rom filter.
//
// Plan computes the same geometry without touching pixels. Normalize prepares
// a decoded upload (alpha flattened onto white, long side capped) before
// extraction.
package patch
