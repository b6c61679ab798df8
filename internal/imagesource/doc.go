// Package imagesource provides the domain.ImageSource implementations used to
// load raw images before patch extraction.
//
// Supported references:
//   - Local file paths, optionally prefixed with file:// (FileSource).
//   - http:// and https:// URLs fetched with GET (HTTPSource).
//
// Router dispatches a reference to the matching source. HTTP fetches run under
// a retry.Policy: transport errors, 429 and 5xx responses are retried; other
// non-2xx statuses fail immediately with the method, URL and status text.
//
// Decode turns fetched bytes into an image.Image. JPEG, PNG, GIF, WebP, BMP
// and TIFF decoders are registered by this package.
package imagesource
