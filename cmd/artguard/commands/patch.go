package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"artguard/internal/domain"
	"artguard/internal/patch"
)

func patchCmd() *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "patch <image>...",
		Short: "Cut images (local paths or http(s) URLs) into canonical patches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runID == "" {
				runID = uuid.NewString()
			}
			sum, err := appCtx.PatchService.ProcessBatch(cmd.Context(), domain.RunID(runID), args)
			fmt.Fprintf(cmd.OutOrStdout(),
				"Run %s: %d total, %d processed, %d skipped, %d errors, %d patches\n",
				runID, sum.Total, sum.Processed, sum.Skipped, sum.Errors, sum.Patches)
			if err != nil {
				return fmt.Errorf("patch run %s: %w", runID, err)
			}
			if sum.Errors > 0 {
				return fmt.Errorf("patch run %s: %d of %d images failed", runID, sum.Errors, sum.Total)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&runID, "run-id", "", "run id (default a fresh UUID)")
	f.IntVar(&canonicalSize, "canonical-size", patch.DefaultCanonicalSize, "side of every output patch")
	f.IntVar(&maxSide, "max-side", 0, "downscale images whose long side exceeds this before extraction (0 keeps the original size)")
	f.StringVar(&filter, "filter", "catmullrom", "resampling filter: catmullrom|bilinear|approxbilinear|nearest")
	f.IntVar(&workers, "workers", 0, "concurrent images (default one per CPU)")
	return cmd
}
