// Package sqlserver registers the "sqlserver" data-source backend.
package sqlserver

import (
	"context"
	"database/sql"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	_ "github.com/microsoft/go-mssqldb"
)

func init() {
	datasource.Register("sqlserver", datasource.Backend{
		Dialect: datasource.AtPDialect,
		Open:    Open,
	})
}

func Open(_ context.Context, settings datasource.Settings) (*sql.DB, error) {
	return sql.Open("sqlserver", settings.DSN)
}
