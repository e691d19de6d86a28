// Package snowflake registers the "snowflake" data-source backend.
package snowflake

import (
	"context"
	"database/sql"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	sf "github.com/snowflakedb/gosnowflake"
)

func init() {
	datasource.Register("snowflake", datasource.Backend{
		Dialect: datasource.Dialect{Name: "snowflake", Placeholder: datasource.PlaceholderQuestion},
		Open:    Open,
	})
}

// Open validates the DSN with the driver's parser before opening the pool.
func Open(_ context.Context, settings datasource.Settings) (*sql.DB, error) {
	cfg, err := sf.ParseDSN(settings.DSN)
	if err != nil {
		return nil, err
	}
	dsn, err := sf.DSN(cfg)
	if err != nil {
		return nil, err
	}
	return sql.Open("snowflake", dsn)
}
