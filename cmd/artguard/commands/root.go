package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"artguard/internal/app"
)

var (
	home      string
	logLevel  string
	logFormat string
	workers   int
	appCtx    *app.Wire

	canonicalSize int
	maxSide       int
	filter        string
)

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "artguard",
		Short:         "Deterministic dataset splits and patch extraction for forgery detection",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// plan is pure geometry and needs no home directory.
			if cmd.Name() == "plan" {
				return nil
			}
			if home == "" {
				h, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = h
			}
			logger, err := app.NewLogger(logLevel, logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			w, err := app.NewWire(app.Config{
				Home:          home,
				Workers:       workers,
				CanonicalSize: canonicalSize,
				MaxSide:       maxSide,
				Filter:        filter,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			appCtx = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default $ARTGUARD_HOME or ~/.artguard)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text|json")

	root.AddCommand(recordsCmd(), splitCmd(), manifestCmd(), patchCmd(), planCmd())
	return root
}
