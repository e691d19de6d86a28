package report

import (
	"slices"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// Validate reports the expected columns that table lacks, sorted by name.
func Validate(table domain.ResultTable, expected []string) domain.ValidationResult {
	var missing []string
	for _, col := range expected {
		if _, ok := table.ColumnIndex(col); !ok && !slices.Contains(missing, col) {
			missing = append(missing, col)
		}
	}
	slices.Sort(missing)
	return domain.ValidationResult{Table: table, Missing: missing}
}
