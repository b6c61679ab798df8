package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"artguard/internal/domain"
	splitsvc "artguard/internal/services/split"
	kfold "artguard/internal/split"
)

func splitCmd() *cobra.Command {
	var (
		runID          string
		datasetVersion string
		cfg            = splitsvc.DefaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Assign stratified folds to stored records and write a split manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runID == "" {
				runID = uuid.NewString()
			}
			m, err := appCtx.SplitService.Run(cmd.Context(), domain.RunID(runID), datasetVersion, cfg)
			if err != nil {
				return fmt.Errorf("split run %s: %w", runID, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d items, %d folds, fingerprint %s\n",
				m.RunID, len(m.Assignment), cfg.KFolds, m.Fingerprint)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FOLD\tTRAIN\tVAL\tTEST")
			for fold := 0; fold < cfg.KFolds; fold++ {
				set := m.Folds[fold]
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", fold, len(set.Train), len(set.Val), len(set.Test))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return printStrata(cmd, datasetVersion, cfg, m.Assignment)
		},
	}

	f := cmd.Flags()
	f.StringVar(&runID, "run-id", "", "run id (default a fresh UUID)")
	f.StringVar(&datasetVersion, "dataset-version", "", "only split records of this dataset version")
	f.IntVar(&cfg.KFolds, "k-folds", cfg.KFolds, "number of outer folds")
	f.Int64Var(&cfg.OuterSeed, "outer-seed", cfg.OuterSeed, "seed for fold assignment")
	f.Int64Var(&cfg.InnerSeed, "inner-seed", cfg.InnerSeed, "seed for train/val selection")
	f.Float64Var(&cfg.ValFraction, "val-fraction", cfg.ValFraction, "share of each stratum's train pool used for validation")
	f.StringVar(&cfg.StratifyOn, "stratify-on", cfg.StratifyOn,
		"record field to stratify on: "+strings.Join(domain.StratifyFields, "|"))
	f.StringVar(&cfg.HashAlgorithm, "hash", cfg.HashAlgorithm, "ordering hash: sha256|blake2b")
	f.IntVar(&workers, "workers", 0, "concurrent folds (default one per CPU)")
	return cmd
}

// printStrata prints how many items of each stratum landed in every fold.
func printStrata(
	cmd *cobra.Command,
	datasetVersion string,
	cfg domain.SplitConfig,
	assignment domain.FoldAssignment,
) error {
	recs, err := appCtx.Records.ListRecords(datasetVersion)
	if err != nil {
		return err
	}
	items, err := domain.Items(recs, cfg.StratifyOn)
	if err != nil {
		return err
	}
	counts := kfold.FoldCounts(items, assignment, cfg.KFolds)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "STRATUM")
	for fold := 0; fold < cfg.KFolds; fold++ {
		fmt.Fprintf(tw, "\tF%d", fold)
	}
	fmt.Fprintln(tw)
	for _, s := range kfold.Strata(counts) {
		fmt.Fprint(tw, s)
		for _, c := range counts[s] {
			fmt.Fprintf(tw, "\t%d", c)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
