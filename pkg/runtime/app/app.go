// Package app assembles the report pipeline from settings. It is shared by
// the web server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/metrics"
	"github.com/de-tools/stock-atlas/pkg/services/config"
	"github.com/de-tools/stock-atlas/pkg/services/report"
	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	"github.com/de-tools/stock-atlas/pkg/store/files"
	"github.com/de-tools/stock-atlas/pkg/store/stocks"
	"github.com/rs/zerolog"

	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/all"
)

type App struct {
	Reports report.Controller
	Metrics *metrics.Metrics

	db *datasource.DB
}

// New opens the data source and wires the resolver, controller and metrics.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, settings *config.Settings) (*App, error) {
	logger := zerolog.Ctx(ctx)

	m, err := metrics.New()
	if err != nil {
		return nil, err
	}

	dsn, err := settings.ResolveDSN(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data source: %w", err)
	}

	db, err := datasource.Open(ctx, datasource.Settings{
		Driver:       settings.DataSource.Driver,
		DSN:          dsn,
		MaxOpenConns: settings.DataSource.MaxOpenConns,
		BootQueries:  settings.DataSource.BootQueries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open data source: %w", err)
	}

	store, err := stocks.NewStore(db, stocks.Options{
		QueryTimeout: settings.DataSource.QueryTimeout,
		Metrics:      m,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create stock store: %w", err)
	}

	reader, err := newFileReader(ctx, settings.Files)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().
		Str("driver", settings.DataSource.Driver).
		Str("sector_csv", settings.Files.SectorCSV).
		Msg("report pipeline ready")

	return &App{
		Reports: report.NewController(report.NewResolver(store, reader, settings.Files.SectorCSV), m),
		Metrics: m,
		db:      db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// newFileReader registers a remote opener only for the scheme the sector
// file actually uses, so unused cloud credentials are never resolved.
func newFileReader(ctx context.Context, cfg config.Files) (*files.Reader, error) {
	reader := files.NewReader()
	if cfg.SectorCSV == "" {
		return reader, nil
	}

	scheme := files.Scheme(cfg.SectorCSV)
	switch scheme {
	case "s3":
		opener, err := files.NewS3Opener(ctx)
		if err != nil {
			return nil, err
		}
		reader.Register(scheme, opener)
	case "azblob":
		opener, err := files.NewAzureBlobOpener()
		if err != nil {
			return nil, err
		}
		reader.Register(scheme, opener)
	case "dbfs":
		opener, err := files.NewDatabricksOpener(cfg.DatabricksProfile)
		if err != nil {
			return nil, err
		}
		reader.Register(scheme, opener)
	}
	return reader, nil
}
