package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gainhound/internal/services/plex"
)

const plexReadyTimeout = time.Minute

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var clearData bool
	var wait bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Trigger the downstream library analysis manually",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Plex.Enabled {
				return errors.New("plex integration is disabled; set plex.enabled = true")
			}
			client := plex.NewFromConfig(cfg)

			if wait {
				waitCtx, cancel := context.WithTimeout(cmd.Context(), plexReadyTimeout)
				err := client.WaitReady(waitCtx)
				cancel()
				if err != nil {
					return err
				}
			}

			if clearData {
				if err := client.ClearAnalysis(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "analysis data cleared")
				return nil
			}

			if err := client.TriggerAnalysis(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "analysis request submitted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearData, "clear", false, "Clear stored analysis data instead of triggering a scan")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the server to answer before sending the request")
	return cmd
}
