package files

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// ParseCSV reads a header row plus records. Cells that parse as finite numbers
// become float64; everything else, NaN and Inf included, stays a trimmed
// string. Empty cells are nil.
func ParseCSV(r io.Reader) (domain.ResultTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.ResultTable{Rows: [][]any{}}, nil
	}
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := domain.ResultTable{Columns: columns, Rows: [][]any{}}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.ResultTable{}, fmt.Errorf("read record %d: %w", len(table.Rows)+1, err)
		}

		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = parseCell(cell)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func parseCell(cell string) any {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && domain.IsFinite(f) {
		return f
	}
	return cell
}
