package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"artguard/internal/domain"
)

// NewLogger builds a slog logger writing to w. level is one of
// debug|info|warn|error and format one of text|json.
func NewLogger(level, format string, w io.Writer) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("%w: log level %q", domain.ErrInvalidConfiguration, level)
	}
	opts := &slog.HandlerOptions{Level: lv}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", domain.ErrInvalidConfiguration, format)
	}
}
