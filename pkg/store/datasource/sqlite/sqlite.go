// Package sqlite registers the "sqlite" data-source backend (pure Go driver).
package sqlite

import (
	"context"
	"database/sql"

	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	_ "modernc.org/sqlite"
)

func init() {
	datasource.Register("sqlite", datasource.Backend{
		Dialect: datasource.Dialect{Name: "sqlite", Placeholder: datasource.PlaceholderQuestion},
		Open:    Open,
	})
}

func Open(ctx context.Context, settings datasource.Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DSN)
	if err != nil {
		return nil, err
	}
	for _, q := range settings.BootQueries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
