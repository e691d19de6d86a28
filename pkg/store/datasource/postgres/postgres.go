// Package postgres registers the "postgres" data-source backend on pgx.
package postgres

import (
	"context"
	"database/sql"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

func init() {
	datasource.Register("postgres", datasource.Backend{
		Dialect: datasource.DollarDialect,
		Open:    Open,
	})
}

func Open(_ context.Context, settings datasource.Settings) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(settings.DSN)
	if err != nil {
		return nil, err
	}
	// Views are read-only; keep every session in a read-only transaction mode.
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = map[string]string{}
	}
	cfg.RuntimeParams["default_transaction_read_only"] = "on"
	return stdlib.OpenDB(*cfg), nil
}
