package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"artguard/internal/domain"
)

func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest <run-id>",
		Short: "Print the stored split manifest of a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok, err := appCtx.Splits.LoadManifest(domain.RunID(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no split manifest for run %q", args[0])
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		},
	}
}
