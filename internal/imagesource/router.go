package imagesource

import (
	"context"
	"strings"

	"artguard/internal/domain"
)

// Router sends http(s) references to HTTP and everything else to Files.
type Router struct {
	HTTP  domain.ImageSource
	Files domain.ImageSource
}

// NewRouter returns a Router over the given sources.
func NewRouter(httpSource, fileSource domain.ImageSource) *Router {
	return &Router{HTTP: httpSource, Files: fileSource}
}

// Fetch dispatches ref by scheme.
func (r *Router) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if IsURL(ref) {
		return r.HTTP.Fetch(ctx, ref)
	}
	return r.Files.Fetch(ctx, ref)
}

// IsURL reports whether ref is an http or https URL.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

var _ domain.ImageSource = (*Router)(nil)
