package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gainhound/internal/cycle"
	"gainhound/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the library and trigger debounced cycles on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runner, err := cycle.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			w, err := watcher.New(cfg, runner, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := w.Run(runCtx); err != nil {
				return err
			}
			logger.Info("watcher stopped")
			return nil
		},
	}
}
