package patch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"artguard/internal/domain"
	"artguard/internal/imagesource"
	cut "artguard/internal/patch"
	"artguard/internal/workpool"
)

// errSkipped marks inputs that are not images at all.
var errSkipped = errors.New("patch: not an image")

// Options tunes a patch Service.
type Options struct {
	// MaxSide caps the long side before extraction; <= 0 keeps the original
	// size. A cap changes the grid depth and the patch coordinates.
	MaxSide int
	// Workers bounds concurrent images; <= 0 uses one per CPU.
	Workers int
}

// DefaultOptions returns the options used by the CLI and API.
func DefaultOptions() Options {
	return Options{}
}

// Service extracts and persists patches.
type Service struct {
	source    domain.ImageSource
	records   domain.RecordStore
	patches   domain.PatchStore
	runs      domain.RunStore
	extractor *cut.Extractor
	log       *slog.Logger
	opts      Options
	now       func() time.Time
}

// New constructs a patch Service. A nil extractor uses the defaults.
func New(
	source domain.ImageSource,
	records domain.RecordStore,
	patches domain.PatchStore,
	runs domain.RunStore,
	extractor *cut.Extractor,
	logger *slog.Logger,
	opts Options,
) *Service {
	if extractor == nil {
		extractor = cut.NewExtractor()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:    source,
		records:   records,
		patches:   patches,
		runs:      runs,
		extractor: extractor,
		log:       logger.With("component", "patch"),
		opts:      opts,
		now:       time.Now,
	}
}

// ProcessImage normalizes img, extracts its patches and persists them under
// imageID. Records are saved only when every patch was written.
func (s *Service) ProcessImage(
	ctx context.Context,
	imageID string,
	img image.Image,
) ([]domain.PatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	descs, err := s.extractor.Extract(cut.Normalize(img, s.opts.MaxSide))
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", imageID, err)
	}

	records := make([]domain.PatchRecord, 0, len(descs))
	for _, d := range descs {
		rec, err := s.patches.SavePatch(imageID, d)
		if err != nil {
			return nil, fmt.Errorf("saving patch %s of %s: %w", d.ID, imageID, err)
		}
		records = append(records, rec)
	}
	if err := s.patches.SavePatchRecords(imageID, records); err != nil {
		return nil, fmt.Errorf("saving patch records of %s: %w", imageID, err)
	}
	return records, nil
}

// ProcessBatch processes every ref and records the run. The returned error is
// non-nil only when the run record cannot be saved or ctx ends the batch
// early; per-image failures are reported in the Summary.
func (s *Service) ProcessBatch(
	ctx context.Context,
	runID domain.RunID,
	refs []string,
) (domain.Summary, error) {
	started := s.now().Unix()
	run := domain.RunRecord{
		RunID:     runID,
		Kind:      domain.RunKindPatch,
		Status:    domain.RunRunning,
		CreatedAt: started,
		UpdatedAt: started,
	}
	if err := s.runs.SaveRun(run); err != nil {
		return domain.Summary{}, fmt.Errorf("saving run %s: %w", runID, err)
	}

	var (
		mu      sync.Mutex
		summary = domain.Summary{Total: len(refs)}
	)
	poolErr := workpool.Each(ctx, s.opts.Workers, len(refs), func(ctx context.Context, i int) {
		ref := refs[i]
		n, err := s.processRef(ctx, runID, ref)

		mu.Lock()
		defer mu.Unlock()
		switch {
		case errors.Is(err, errSkipped):
			summary.Skipped++
			s.log.Debug("skipped", "run_id", runID, "ref", ref, "reason", err)
		case err != nil:
			summary.Errors++
			s.log.Warn("image failed", "run_id", runID, "ref", ref, "err", err)
		default:
			summary.Processed++
			summary.Patches += n
			s.log.Debug("image processed", "run_id", runID, "ref", ref, "patches", n)
		}
	})

	run.UpdatedAt = s.now().Unix()
	run.Summary = &summary
	run.Status = summary.Status()
	if poolErr != nil {
		run.Status = domain.RunFailed
	}
	if err := s.runs.SaveRun(run); err != nil {
		return summary, fmt.Errorf("saving run %s: %w", runID, err)
	}
	s.log.Info("patch run finished",
		"run_id", runID,
		"status", run.Status,
		"total", summary.Total,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"patches", summary.Patches,
	)
	return summary, poolErr
}

// processRef handles one reference and returns the number of patches stored.
func (s *Service) processRef(ctx context.Context, runID domain.RunID, ref string) (int, error) {
	if !imagesource.IsImageRef(ref) {
		return 0, fmt.Errorf("%w: %s", errSkipped, ref)
	}
	b, err := s.source.Fetch(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", ref, err)
	}
	img, format, err := imagesource.Decode(b)
	if err != nil {
		return 0, fmt.Errorf("%w: decoding %s: %v", errSkipped, ref, err)
	}

	imageID := imagesource.ImageID(ref)
	if imageID == "" {
		imageID = uuid.NewString()
	}
	s.log.Debug("image decoded",
		"ref", ref, "image_id", imageID, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	records, err := s.ProcessImage(ctx, imageID, img)
	if err != nil {
		return 0, err
	}
	if err := s.recordImage(runID, imageID, ref, img.Bounds().Size()); err != nil {
		return 0, err
	}
	return len(records), nil
}

// recordImage creates the image record of a processed image, or stamps the
// run id on the existing one so its labels survive.
func (s *Service) recordImage(runID domain.RunID, imageID, ref string, size image.Point) error {
	rec, ok, err := s.records.LoadRecord(imageID)
	if err != nil {
		return fmt.Errorf("loading record %s: %w", imageID, err)
	}
	if !ok {
		rec = domain.ImageRecord{
			ImageID:     imageID,
			ImageName:   imagesource.Name(ref),
			ImagePath:   ref,
			ImageWidth:  size.X,
			ImageHeight: size.Y,
			CreatedAt:   s.now().Unix(),
		}
	}
	rec.RunID = runID
	if err := s.records.SaveRecords([]domain.ImageRecord{rec}); err != nil {
		return fmt.Errorf("saving record %s: %w", imageID, err)
	}
	return nil
}

// Compile-time assertion that Service implements domain.PatchService.
var _ domain.PatchService = (*Service)(nil)
