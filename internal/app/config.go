package app

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"artguard/internal/patch"
	"artguard/internal/retry"
)

// HomeEnv overrides the default home directory when set.
const HomeEnv = "ARTGUARD_HOME"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home          string       // data directory, e.g. $HOME/.artguard
	Workers       int          // concurrent folds/images; <= 0 means one per CPU
	CanonicalSize int          // patch side; 0 means patch.DefaultCanonicalSize
	MaxSide       int          // opt-in long-side cap before extraction; <= 0 disables
	Filter        string       // resampling filter name, see patch.Interpolator
	HTTP          *http.Client // optional; defaults to http.DefaultClient
	Retry         retry.Policy // zero value means retry.DefaultPolicy()
	Logger        *slog.Logger // optional; defaults to slog.Default()
}

// DefaultHome returns $ARTGUARD_HOME, or ~/.artguard when it is unset.
func DefaultHome() (string, error) {
	if h := os.Getenv(HomeEnv); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".artguard"), nil
}

func (c Config) canonicalSize() int {
	if c.CanonicalSize == 0 {
		return patch.DefaultCanonicalSize
	}
	return c.CanonicalSize
}
