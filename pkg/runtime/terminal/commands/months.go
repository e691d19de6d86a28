package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewMonthsCmd(provider ControllerProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months available to the gainers-losers report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, release, err := provider(cmd)
			if err != nil {
				return err
			}
			defer release()

			months, err := ctrl.Months(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list months: %w", err)
			}
			if len(months) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No months found")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(months, "\n"))
			return nil
		},
	}
}
