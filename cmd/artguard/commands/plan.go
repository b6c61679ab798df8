package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"artguard/internal/patch"
)

func planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <width> <height>",
		Short: "Print the patch geometry for an image size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("width: %w", err)
			}
			h, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("height: %w", err)
			}
			g, err := patch.Plan(w, h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Image %dx%d: depth %d, grid %dx%d, %d patches\n",
				g.Width, g.Height, g.Depth, g.GridN, g.GridN, g.Count())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTYPE\tX\tY\tWIDTH\tHEIGHT")
			for i, r := range g.Regions() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\n",
					i, r.Type, r.Rect.Min.X, r.Rect.Min.Y, r.Rect.Dx(), r.Rect.Dy())
			}
			return tw.Flush()
		},
	}
}
