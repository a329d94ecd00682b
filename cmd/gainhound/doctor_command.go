package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gainhound/internal/deps"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check availability of the external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.ForConfig(cfg))
			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				availability := "ok"
				if !status.Available {
					availability = status.Detail
					if status.Required {
						missingRequired = true
					}
				}
				needed := "optional"
				if status.Required {
					needed = "required"
				}
				rows = append(rows, []string{status.Name, status.Command, needed, availability})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Tool", "Command", "Needed", "Status"},
				rows,
				nil,
			))
			if missingRequired {
				return fmt.Errorf("required tools missing")
			}
			return nil
		},
	}
}
