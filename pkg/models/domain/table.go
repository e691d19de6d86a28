package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ResultTable is an ordered set of rows sharing one column list.
// Cells hold string, float64, time.Time or nil.
type ResultTable struct {
	Columns []string
	Rows    [][]any
}

func NewResultTable(columns []string, rows [][]any) ResultTable {
	return ResultTable{Columns: columns, Rows: rows}
}

func (t ResultTable) Len() int {
	return len(t.Rows)
}

func (t ResultTable) Empty() bool {
	return len(t.Rows) == 0
}

func (t ResultTable) ColumnIndex(name string) (int, bool) {
	i := slices.Index(t.Columns, name)
	return i, i >= 0
}

// Value returns the cell at row i for the named column, or nil.
func (t ResultTable) Value(i int, column string) any {
	idx, ok := t.ColumnIndex(column)
	if !ok || i < 0 || i >= len(t.Rows) || idx >= len(t.Rows[i]) {
		return nil
	}
	return t.Rows[i][idx]
}

// Pick returns a new table holding copies of the given rows in the given order.
func (t ResultTable) Pick(indices []int) ResultTable {
	rows := make([][]any, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, slices.Clone(t.Rows[i]))
	}
	return ResultTable{Columns: slices.Clone(t.Columns), Rows: rows}
}

func (t ResultTable) Clone() ResultTable {
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = slices.Clone(r)
	}
	return ResultTable{Columns: slices.Clone(t.Columns), Rows: rows}
}

// AsFloat coerces numeric cells, including numeric strings. NaN and
// infinities are not numeric: they have no JSON encoding.
func AsFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return f, IsFinite(f)
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AsString renders a cell for labels and text output.
func AsString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if !IsFinite(s) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case time.Time:
		if s.Hour() == 0 && s.Minute() == 0 && s.Second() == 0 && s.Nanosecond() == 0 {
			return s.Format(time.DateOnly)
		}
		return s.Format(time.RFC3339)
	}
	f, ok := AsFloat(v)
	if ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
