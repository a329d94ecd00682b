package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gainhound/internal/decision"
	"gainhound/internal/state"
)

func newCandidatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "List files whose measured gain exceeds the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := state.NewStore(cfg.StatePath())
			if err != nil {
				return err
			}
			records, err := store.Load()
			if err != nil {
				return err
			}

			candidates := decision.Candidates(records, cfg.Scan.GainThresholdDB)
			if len(candidates) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no candidates above %.1f dB\n", cfg.Scan.GainThresholdDB)
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, cand := range candidates {
				rows = append(rows, []string{cand.Path, fmt.Sprintf("%+.2f", cand.GainDB)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Path", "Gain (dB)"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
