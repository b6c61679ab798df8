package imagesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"artguard/internal/domain"
	"artguard/internal/retry"
)

// ErrNotFound is returned when a referenced image does not exist.
var ErrNotFound = errors.New("imagesource: image not found")

// DefaultMaxBytes bounds a single fetched image.
const DefaultMaxBytes = 64 << 20

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Method string
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("imagesource %s %s: %s", e.Method, e.URL, e.Status)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// HTTPSource fetches images over HTTP.
type HTTPSource struct {
	HTTP     *http.Client
	Retry    retry.Policy
	MaxBytes int64
}

// NewHTTP returns an HTTPSource using client (http.DefaultClient when nil)
// and the given retry policy.
func NewHTTP(client *http.Client, policy retry.Policy) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	if policy.Retryable == nil {
		policy.Retryable = Retryable
	}
	return &HTTPSource{HTTP: client, Retry: policy, MaxBytes: DefaultMaxBytes}
}

// Fetch GETs url and returns the body.
func (s *HTTPSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := s.Retry.Do(ctx, func(ctx context.Context) error {
		b, err := s.get(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(err)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, retry.Permanent(fmt.Errorf("%w: %s", ErrNotFound, url))
	}
	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Method: http.MethodGet, URL: url, Status: resp.Status, Code: resp.StatusCode}
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, retry.Permanent(fmt.Errorf("imagesource: %s exceeds %d bytes", url, limit))
	}
	return b, nil
}

// Retryable classifies fetch errors: 429 and 5xx statuses and transport
// errors are retried, other statuses are not.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

var _ domain.ImageSource = (*HTTPSource)(nil)
