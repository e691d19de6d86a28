package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/stock-atlas/pkg/runtime/app"
	"github.com/de-tools/stock-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/stock-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/stock-atlas/pkg/services/config"
	"github.com/de-tools/stock-atlas/pkg/services/report"
	"github.com/spf13/cobra"
)

// OpenFunc builds a report controller from loaded settings. The returned
// closer releases the data source.
type OpenFunc func(ctx context.Context, settings *config.Settings) (report.Controller, io.Closer, error)

// CLI represents the command-line interface
type CLI struct {
	open     OpenFunc
	reporter *export.Reporter
	rootCmd  *cobra.Command

	cfgPath string
}

// Options contain configuration for the CLI
type Options struct {
	Open   OpenFunc
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Open == nil {
		opts.Open = openApp
	}

	cli := &CLI{
		open:     opts.Open,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stock-atlas",
		Short:         "Stock analysis reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.cfgPath, "config", "c", "", "Path to a settings file (yaml, toml or json)")
	flags.String("driver", "", "Data source driver (mysql, postgres, sqlite, duckdb, snowflake, databricks, sqlserver)")
	flags.String("dsn", "", "Data source connection string")
	flags.String("mycnf", "", "MySQL option file to build the DSN from")
	flags.String("profile", "", "Option file section to read")
	flags.Duration("query-timeout", 0, "Per-query timeout")
	flags.String("sector-csv", "", "Location of the sector returns CSV")
	flags.String("log-level", "", "Log level")
	flags.Bool("pretty", false, "Human readable logs")

	cmd.AddCommand(commands.NewReportsCmd())
	cmd.AddCommand(commands.NewShowCmd(cli.controller, cli.reporter))
	cmd.AddCommand(commands.NewMonthsCmd(cli.controller))

	return cmd
}

// controller loads settings with the command's flags applied and opens the
// pipeline. The context passed to the command carries the configured logger.
func (cli *CLI) controller(cmd *cobra.Command) (report.Controller, func(), error) {
	settings, err := config.Load(cli.cfgPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger := settings.Logger()
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	ctrl, closer, err := cli.open(ctx, settings)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, func() {
		if err := closer.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close data source")
		}
	}, nil
}

func openApp(ctx context.Context, settings *config.Settings) (report.Controller, io.Closer, error) {
	a, err := app.New(ctx, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start report pipeline: %w", err)
	}
	return a.Reports, a, nil
}
