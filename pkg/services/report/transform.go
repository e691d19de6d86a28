package report

import (
	"fmt"
	"slices"
	"time"

	"github.com/araddon/dateparse"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

const (
	topCumulative = 5
	topMovers     = 5
)

// TopN returns the first n rows after a stable sort on a numeric column.
// Rows whose value is not numeric sort last in either direction.
func TopN(table domain.ResultTable, column string, n int, descending bool) (domain.ResultTable, error) {
	col, ok := table.ColumnIndex(column)
	if !ok {
		return domain.ResultTable{}, &domain.SchemaMismatchError{Missing: []string{column}}
	}

	type keyed struct {
		row   int
		value float64
		ok    bool
	}
	keys := make([]keyed, len(table.Rows))
	for i, row := range table.Rows {
		v, ok := domain.AsFloat(row[col])
		keys[i] = keyed{row: i, value: v, ok: ok}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case a.ok != b.ok:
			if a.ok {
				return -1
			}
			return 1
		case a.value == b.value:
			return 0
		case (a.value > b.value) == descending:
			return -1
		}
		return 1
	})

	picked := make([]int, 0, min(n, len(keys)))
	for _, k := range keys[:min(n, len(keys))] {
		picked = append(picked, k.row)
	}
	return table.Pick(picked), nil
}

// GainersLosers splits a month's table into its top gainers and losers.
func GainersLosers(table domain.ResultTable) (gainers, losers domain.ResultTable, err error) {
	gainers, err = TopN(table, "monthly_return", topMovers, true)
	if err != nil {
		return domain.ResultTable{}, domain.ResultTable{}, err
	}
	losers, err = TopN(table, "monthly_return", topMovers, false)
	if err != nil {
		return domain.ResultTable{}, domain.ResultTable{}, err
	}
	return gainers, losers, nil
}

// TopCumulativeReturns keeps the full date series of the n tickers with the
// highest last-by-date cumulative return. It also returns the per-ticker
// final values, ordered descending. Null returns are skipped when picking a
// ticker's last value. The date column is parsed into time.Time in the
// returned series.
func TopCumulativeReturns(table domain.ResultTable, n int) (series, finals domain.ResultTable, err error) {
	dateCol, _ := table.ColumnIndex("date")
	tickerCol, _ := table.ColumnIndex("Ticker")
	returnCol, _ := table.ColumnIndex("cumulative_return")
	if dateCol < 0 || tickerCol < 0 || returnCol < 0 {
		return series, finals, &domain.SchemaMismatchError{Missing: Validate(table, []string{"date", "Ticker", "cumulative_return"}).Missing}
	}

	parsed := table.Clone()
	type last struct {
		date  time.Time
		value any
	}
	lastByTicker := map[string]last{}
	known := map[string]bool{}
	var tickers []string

	for i, row := range parsed.Rows {
		day, err := parseDate(row[dateCol])
		if err != nil {
			return series, finals, fmt.Errorf("%w: row %d: %w", domain.ErrRenderFailure, i, err)
		}
		row[dateCol] = day

		ticker := domain.AsString(row[tickerCol])
		if !known[ticker] {
			known[ticker] = true
			tickers = append(tickers, ticker)
		}
		if row[returnCol] == nil {
			continue
		}
		prev, seen := lastByTicker[ticker]
		if !seen || !day.Before(prev.date) {
			lastByTicker[ticker] = last{date: day, value: row[returnCol]}
		}
	}

	finals = domain.ResultTable{Columns: []string{"Ticker", "cumulative_return"}, Rows: [][]any{}}
	for _, ticker := range tickers {
		finals.Rows = append(finals.Rows, []any{ticker, lastByTicker[ticker].value})
	}
	finals, err = TopN(finals, "cumulative_return", n, true)
	if err != nil {
		return series, finals, err
	}

	winners := map[string]bool{}
	for _, row := range finals.Rows {
		winners[row[0].(string)] = true
	}
	var keep []int
	for i, row := range parsed.Rows {
		if winners[domain.AsString(row[tickerCol])] {
			keep = append(keep, i)
		}
	}
	return parsed.Pick(keep), finals, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		return dateparse.ParseAny(d)
	}
	return time.Time{}, fmt.Errorf("unsupported date value %v", v)
}
