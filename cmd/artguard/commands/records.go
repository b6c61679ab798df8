package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"artguard/internal/domain"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage stored image records",
	}
	cmd.AddCommand(recordsImportCmd(), recordsListCmd())
	return cmd
}

func recordsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Validate and store a JSON array of image records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var recs []domain.ImageRecord
			if err := json.Unmarshal(b, &recs); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			if err := appCtx.Records.SaveRecords(recs); err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records\n", len(recs))
			return nil
		},
	}
}

func recordsListCmd() *cobra.Command {
	var datasetVersion string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored records with their fold ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := appCtx.Records.ListRecords(datasetVersion)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "IMAGE_ID\tLABEL\tSUBLABEL\tFOLD\tRUN_ID")
			for _, r := range recs {
				fold := "-"
				if r.FoldID != nil {
					fold = fmt.Sprint(*r.FoldID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ImageID, r.Label, r.Sublabel, fold, r.RunID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&datasetVersion, "dataset-version", "", "only list records of this dataset version")
	return cmd
}
