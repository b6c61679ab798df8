package imagesource_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artguard/internal/imagesource"
	"artguard/internal/retry"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{1, 2, 3, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fastRetry() retry.Policy {
	return retry.Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond}
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	body := pngBytes(t, 4, 4)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	src := imagesource.NewHTTP(srv.Client(), fastRetry())
	got, err := src.Fetch(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, body, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := imagesource.NewHTTP(srv.Client(), fastRetry()).Fetch(context.Background(), srv.URL+"/missing.jpg")
	require.ErrorIs(t, err, imagesource.ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSource_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := imagesource.NewHTTP(srv.Client(), fastRetry()).Fetch(context.Background(), srv.URL+"/x.jpg")
	var se *imagesource.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Contains(t, se.Error(), "GET")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSource_SizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	src := imagesource.NewHTTP(srv.Client(), fastRetry())
	src.MaxBytes = 10
	_, err := src.Fetch(context.Background(), srv.URL+"/big.png")
	require.Error(t, err)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	body := pngBytes(t, 2, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), body, 0o600))

	src := imagesource.NewFile(dir)
	got, err := src.Fetch(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, body, got)

	got, err = src.Fetch(context.Background(), "file://"+filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = src.Fetch(context.Background(), "missing.png")
	require.ErrorIs(t, err, imagesource.ErrNotFound)
}

func TestRouter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "local.png"), []byte("local"), 0o600))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	r := imagesource.NewRouter(imagesource.NewHTTP(srv.Client(), fastRetry()), imagesource.NewFile(dir))
	b, err := r.Fetch(context.Background(), "local.png")
	require.NoError(t, err)
	assert.Equal(t, "local", string(b))
	b, err = r.Fetch(context.Background(), srv.URL+"/remote.png")
	require.NoError(t, err)
	assert.Equal(t, "remote", string(b))
}

func TestDecode(t *testing.T) {
	img, format, err := imagesource.Decode(pngBytes(t, 5, 3))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())

	_, _, err = imagesource.Decode([]byte("not an image"))
	require.Error(t, err)
}

func TestIsImageRef(t *testing.T) {
	assert.True(t, imagesource.IsImageRef("a/b/c.JPG"))
	assert.True(t, imagesource.IsImageRef("https://host/x/y.webp?sig=1"))
	assert.False(t, imagesource.IsImageRef("notes.txt"))
	assert.False(t, imagesource.IsImageRef("https://host/x.png/readme"))
}

func TestName(t *testing.T) {
	assert.Equal(t, "c.JPG", imagesource.Name("a/b/c.JPG"))
	assert.Equal(t, "y.webp", imagesource.Name("https://host/x/y.webp?sig=1"))
	assert.Equal(t, "p.png", imagesource.Name("p.png"))
}

func TestImageID(t *testing.T) {
	id := "3f1c2b9e-8d4a-4f6b-9a1e-2c3d4e5f6a7b"
	assert.Equal(t, id, imagesource.ImageID("training/unprocessed/"+id+"/painting.jpg"))
	assert.Equal(t, id, imagesource.ImageID("https://bucket.example/training/unprocessed/"+id+"/p.png"))
	assert.Equal(t, "", imagesource.ImageID("training/unprocessed/painting.jpg"))
	assert.Equal(t, "", imagesource.ImageID("painting.jpg"))
}
