package sql

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// ScanTable reads every row into a domain.ResultTable. Integers and decimals
// become float64, text becomes string, and temporal values stay time.Time.
func ScanTable(rows *sql.Rows) (domain.ResultTable, error) {
	columns, err := rows.Columns()
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("read columns: %w", err)
	}

	dbTypes := make([]string, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			dbTypes[i] = strings.ToUpper(ct.DatabaseTypeName())
		}
	}

	table := domain.ResultTable{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return domain.ResultTable{}, fmt.Errorf("scan row %d: %w", len(table.Rows), err)
		}

		row := make([]any, len(columns))
		for i, v := range raw {
			row[i] = normalize(v, dbTypes[i])
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.ResultTable{}, fmt.Errorf("iterate rows: %w", err)
	}

	return table, nil
}

func normalize(v any, dbType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return normalizeText(string(val), dbType)
	case string:
		return normalizeText(val, dbType)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case int:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val
	}
	return fmt.Sprint(v)
}

func normalizeText(s, dbType string) any {
	if isNumericType(dbType) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

func isNumericType(dbType string) bool {
	switch dbType {
	case "DECIMAL", "NUMERIC", "NUMBER", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "REAL",
		"INT", "INT2", "INT4", "INT8", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT",
		"UNSIGNED INT", "UNSIGNED BIGINT", "UNSIGNED TINYINT", "UNSIGNED SMALLINT", "MONEY":
		return true
	}
	return false
}
