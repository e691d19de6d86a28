package datasource

import (
	"strconv"
	"strings"
)

type PlaceholderStyle int

const (
	// PlaceholderQuestion keeps '?' markers (MySQL, SQLite, DuckDB, Snowflake, Databricks).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar rewrites to $1, $2, ... (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAtP rewrites to @p1, @p2, ... (SQL Server).
	PlaceholderAtP
)

type Dialect struct {
	Name        string
	Placeholder PlaceholderStyle
	// FetchFirst renders row limits as OFFSET/FETCH instead of LIMIT.
	FetchFirst bool
}

var (
	QuestionDialect = Dialect{Name: "generic", Placeholder: PlaceholderQuestion}
	DollarDialect   = Dialect{Name: "postgres", Placeholder: PlaceholderDollar}
	AtPDialect      = Dialect{Name: "sqlserver", Placeholder: PlaceholderAtP, FetchFirst: true}
)

// Rebind rewrites '?' markers outside quoted literals into the dialect's
// placeholder syntax.
func (d Dialect) Rebind(query string) string {
	if d.Placeholder == PlaceholderQuestion {
		return query
	}

	var (
		sb    strings.Builder
		n     int
		quote rune
	)
	sb.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '?':
			n++
			if d.Placeholder == PlaceholderDollar {
				sb.WriteString("$")
			} else {
				sb.WriteString("@p")
			}
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Limit renders a row limit clause appended after ORDER BY.
func (d Dialect) Limit(n int) string {
	if d.FetchFirst {
		return "OFFSET 0 ROWS FETCH NEXT " + strconv.Itoa(n) + " ROWS ONLY"
	}
	return "LIMIT " + strconv.Itoa(n)
}
