package main

import (
	"github.com/spf13/cobra"

	"gainhound/internal/cycle"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one orchestration cycle",
		Long: "Acquire the run lock, scan the library for integrity and gain, " +
			"re-encode over-threshold files when enabled, and release the lock. " +
			"Exits 0 when another run already holds the lock.",
		Args: cobra.NoArgs,
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
			_, err = runner.Run(cmd.Context())
			return err
		},
	}
}
