package commands

import (
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

// ControllerProvider opens the report pipeline for one command run. The
// returned func releases it.
type ControllerProvider func(cmd *cobra.Command) (report.Controller, func(), error)

func NewReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, def := range report.Definitions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", def.ID, def.Menu)
			}
			return nil
		},
	}
}
