package commands

import (
	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/de-tools/stock-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ShowCmd struct {
	month    string
	provider ControllerProvider
	reporter *export.Reporter
}

func NewShowCmd(provider ControllerProvider, reporter *export.Reporter) *cobra.Command {
	sc := &ShowCmd{provider: provider, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "show <report>",
		Short: "Render a report as text",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.month, "month", "", "Month for gainers-losers (defaults to the latest)")

	return cmd
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	id, err := domain.ParseReportID(args[0])
	if err != nil {
		return err
	}

	ctrl, release, err := sc.provider(cmd)
	if err != nil {
		return err
	}
	defer release()

	result, err := ctrl.Run(cmd.Context(), domain.ReportRequest{ID: id, Month: sc.month})
	if err != nil {
		return err
	}

	return sc.reporter.Handle(result)
}
