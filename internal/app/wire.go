package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"artguard/internal/domain"
	"artguard/internal/imagesource"
	"artguard/internal/patch"
	"artguard/internal/retry"
	patchsvc "artguard/internal/services/patch"
	splitsvc "artguard/internal/services/split"
	"artguard/internal/store"
)

// Wire bundles all stores, sources and services for the CLI and API.
type Wire struct {
	Home    string
	Records domain.RecordStore
	Splits  domain.SplitStore
	Patches domain.PatchStore
	Runs    domain.RunStore
	Source  domain.ImageSource

	SplitService domain.SplitService
	PatchService domain.PatchService

	Logger *slog.Logger
	HTTP   *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		return nil, fmt.Errorf("%w: home directory is required", domain.ErrInvalidConfiguration)
	}
	if cfg.canonicalSize() <= 0 {
		return nil, fmt.Errorf("%w: canonical size must be positive, got %d",
			domain.ErrInvalidConfiguration, cfg.CanonicalSize)
	}
	filter, err := patch.Interpolator(cfg.Filter)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// File-based stores
	records := store.NewRecordFileStore(cfg.Home)
	splits := store.NewSplitFileStore(cfg.Home)
	runs := store.NewRunFileStore(cfg.Home)
	patches := store.NewPatchFileStore(cfg.Home, func() int64 { return time.Now().Unix() })

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	policy := cfg.Retry
	if policy.MaxAttempts == 0 {
		policy = retry.DefaultPolicy()
	}

	// Image sources: URLs over HTTP with retries, everything else from disk.
	source := imagesource.NewRouter(
		imagesource.NewHTTP(httpClient, policy),
		imagesource.NewFile(""),
	)

	// High-level services
	extractor := patch.NewExtractor(
		patch.WithCanonicalSize(cfg.canonicalSize()),
		patch.WithInterpolator(filter),
	)
	splitSvc := splitsvc.New(records, splits, runs, logger, cfg.Workers)
	patchSvc := patchsvc.New(source, records, patches, runs, extractor, logger, patchsvc.Options{
		MaxSide: cfg.MaxSide,
		Workers: cfg.Workers,
	})

	return &Wire{
		Home:         cfg.Home,
		Records:      records,
		Splits:       splits,
		Patches:      patches,
		Runs:         runs,
		Source:       source,
		SplitService: splitSvc,
		PatchService: patchSvc,
		Logger:       logger,
		HTTP:         httpClient,
	}, nil
}
