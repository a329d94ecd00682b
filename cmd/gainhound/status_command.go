package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gainhound/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show processed-file records",
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
			if !all {
				records = records.Latest()
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Timestamp.UTC().Format(time.RFC3339),
					rec.Path,
					rec.Value,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Checked", "Path", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every record, not only the latest per file")
	return cmd
}
