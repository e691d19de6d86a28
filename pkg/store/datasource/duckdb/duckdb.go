// Package duckdb registers the "duckdb" data-source backend for local
// analytical database files.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	"github.com/marcboeker/go-duckdb/v2"
)

func init() {
	datasource.Register("duckdb", datasource.Backend{
		Dialect: datasource.Dialect{Name: "duckdb", Placeholder: datasource.PlaceholderQuestion},
		Open:    Open,
	})
}

func Open(_ context.Context, settings datasource.Settings) (*sql.DB, error) {
	bootQueries := append([]string{}, settings.BootQueries...)

	c, err := duckdb.NewConnector(readOnlyDSN(settings.DSN), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}

// readOnlyDSN opens database files with access_mode=READ_ONLY unless the DSN
// already sets it. In-memory databases cannot be opened read-only.
func readOnlyDSN(dsn string) string {
	if dsn == ":memory:" || strings.HasPrefix(dsn, ":memory:?") || strings.Contains(dsn, "access_mode=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "access_mode=READ_ONLY"
}
