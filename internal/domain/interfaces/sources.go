package interfaces

import "context"

// ImageSource fetches the raw encoded bytes of an image by reference
// (a local path or a URL, depending on the implementation).
type ImageSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}
