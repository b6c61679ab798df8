package imagesource

import (
	"bytes"
	"image"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	// Register decoders for every extension the pipeline accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions treated as images.
var Extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Decode decodes b with the registered decoders and returns the format name.
func Decode(b []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(b))
}

// IsImageRef reports whether ref ends in a known image extension.
func IsImageRef(ref string) bool {
	return Extensions[strings.ToLower(path.Ext(refPath(ref)))]
}

// Name returns the file name of ref, without any URL query.
func Name(ref string) string {
	return path.Base(refPath(ref))
}

// refPath returns the slash-separated path of a URL or local reference.
func refPath(ref string) string {
	if IsURL(ref) {
		if u, err := url.Parse(ref); err == nil {
			return u.Path
		}
	}
	return filepath.ToSlash(ref)
}

// ImageID returns the parent directory of ref when it is a UUID, the layout
// uploads use (<prefix>/<stage>/<image_id>/<filename>). Otherwise it returns
// "" and the caller assigns a fresh id.
func ImageID(ref string) string {
	parent := path.Base(path.Dir(refPath(ref)))
	if _, err := uuid.Parse(parent); err != nil {
		return ""
	}
	return parent
}
