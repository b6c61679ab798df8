package imagesource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"artguard/internal/domain"
)

// FileSource reads images from the local filesystem. Relative paths are
// resolved against Root when it is set.
type FileSource struct {
	Root string
}

// NewFile returns a FileSource rooted at root.
func NewFile(root string) *FileSource { return &FileSource{Root: root} }

// Fetch reads the file at ref.
func (s *FileSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(ref, "file://")
	if s.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, path)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return b, err
}

var _ domain.ImageSource = (*FileSource)(nil)
