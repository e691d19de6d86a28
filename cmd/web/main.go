package main

import (
	"fmt"
	"os"

	"github.com/de-tools/stock-atlas/pkg/runtime/app"
	"github.com/de-tools/stock-atlas/pkg/server"
	"github.com/de-tools/stock-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for Stock Atlas",
		SilenceUsage: true,
		RunE:         runServer,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfgPath, "config", "c", "", "Path to a settings file (yaml, toml or json)")
	flags.String("driver", "", "Data source driver")
	flags.String("dsn", "", "Data source connection string")
	flags.String("mycnf", "", "MySQL option file to build the DSN from")
	flags.String("profile", "", "Option file section to read")
	flags.Duration("query-timeout", 0, "Per-query timeout")
	flags.String("sector-csv", "", "Location of the sector returns CSV")
	flags.String("host", "", "Listen host")
	flags.String("port", "", "Listen port")
	flags.String("log-level", "", "Log level")
	flags.Bool("pretty", false, "Human readable logs")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger := settings.Logger()
	ctx := logger.WithContext(cmd.Context())

	pipeline, err := app.New(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close data source")
		}
	}()

	api := server.NewWebAPI(server.Config{
		Addr:            settings.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: pipeline.Reports,
			Metrics: pipeline.Metrics,
			Logger:  logger,
		},
	})

	return api.Start()
}
