// Package mysql registers the "mysql" data-source backend.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	"github.com/go-sql-driver/mysql"
)

func init() {
	datasource.Register("mysql", datasource.Backend{
		Dialect: datasource.Dialect{Name: "mysql", Placeholder: datasource.PlaceholderQuestion},
		Open:    Open,
	})
}

// Open parses the DSN and forces ParseTime so DATE columns scan as time.Time.
func Open(_ context.Context, settings datasource.Settings) (*sql.DB, error) {
	cfg, err := ParseDSN(settings.DSN)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: connector: %w", err)
	}
	return sql.OpenDB(connector), nil
}

func ParseDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg, nil
}
