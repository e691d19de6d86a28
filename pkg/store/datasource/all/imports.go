// Package all links every data-source backend.
package all

import (
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/databricks"
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/duckdb"
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/mysql"
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/postgres"
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/snowflake"
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/sqlite"
	_ "github.com/de-tools/stock-atlas/pkg/store/datasource/sqlserver"
)
