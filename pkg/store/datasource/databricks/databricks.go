// Package databricks registers the "databricks" SQL warehouse backend.
package databricks

import (
	"context"
	"database/sql"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	_ "github.com/databricks/databricks-sql-go"
)

func init() {
	datasource.Register("databricks", datasource.Backend{
		Dialect: datasource.Dialect{Name: "databricks", Placeholder: datasource.PlaceholderQuestion},
		Open:    Open,
	})
}

func Open(_ context.Context, settings datasource.Settings) (*sql.DB, error) {
	return sql.Open("databricks", settings.DSN)
}
