package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"artguard/internal/app"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr      string
		home      string
		logLevel  string
		logFormat string
		workers   int
	)
	cmd := &cobra.Command{
		Use:          "artguard-api",
		Short:        "Serve the artguard split and patch services over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			w, err := app.NewWire(app.Config{Home: home, Workers: workers, Logger: logger})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(w.SplitService, w.PatchService, logger).routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() {
				logger.Info("api listening", "addr", addr, "home", home)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("api stopped")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	f.StringVar(&home, "home", "", "data dir (default $ARTGUARD_HOME or ~/.artguard)")
	f.StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	f.StringVar(&logFormat, "log-format", "text", "log format: text|json")
	f.IntVar(&workers, "workers", 0, "concurrent folds (default one per CPU)")
	return cmd
}
