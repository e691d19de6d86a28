package report

import (
	"testing"
	"time"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func column(t domain.ResultTable, name string) []any {
	var out []any
	for i := range t.Rows {
		out = append(out, t.Value(i, name))
	}
	return out
}

func moversTable() domain.ResultTable {
	returns := []float64{5, -3, 2, -7, 9, 0, -1, 4}
	tickers := []string{"T0", "T1", "T2", "T3", "T4", "T5", "T6", "T7"}
	table := domain.ResultTable{Columns: []string{"Ticker", "month", "monthly_return"}}
	for i, r := range returns {
		table.Rows = append(table.Rows, []any{tickers[i], "2024-03", r})
	}
	return table
}

func TestGainersLosers(t *testing.T) {
	gainers, losers, err := GainersLosers(moversTable())
	require.NoError(t, err)

	assert.Equal(t, []any{9.0, 5.0, 4.0, 2.0, 0.0}, column(gainers, "monthly_return"))
	assert.Equal(t, []any{"T4", "T0", "T7", "T2", "T5"}, column(gainers, "Ticker"))

	assert.Equal(t, []any{-7.0, -3.0, -1.0, 0.0, 2.0}, column(losers, "monthly_return"))
	assert.Equal(t, []any{"T3", "T1", "T6", "T5", "T2"}, column(losers, "Ticker"))
}

func TestGainersLosers_DoesNotMutateInput(t *testing.T) {
	table := moversTable()
	before := table.Clone()

	gainers, _, err := GainersLosers(table)
	require.NoError(t, err)
	gainers.Rows[0][0] = "CHANGED"

	assert.Equal(t, before, table)
}

func TestTopN_StableTies(t *testing.T) {
	table := domain.ResultTable{
		Columns: []string{"Ticker", "monthly_return"},
		Rows: [][]any{
			{"A", 1.0}, {"B", 3.0}, {"C", 1.0}, {"D", 3.0}, {"E", nil}, {"F", "2.5"},
		},
	}

	desc, err := TopN(table, "monthly_return", 6, true)
	require.NoError(t, err)
	assert.Equal(t, []any{"B", "D", "F", "A", "C", "E"}, column(desc, "Ticker"))

	asc, err := TopN(table, "monthly_return", 3, false)
	require.NoError(t, err)
	assert.Equal(t, []any{"A", "C", "F"}, column(asc, "Ticker"))
}

func TestTopN_FewerRowsThanN(t *testing.T) {
	table := domain.ResultTable{Columns: []string{"Ticker", "monthly_return"}, Rows: [][]any{{"A", 1.0}}}

	top, err := TopN(table, "monthly_return", 5, true)
	require.NoError(t, err)
	assert.Equal(t, 1, top.Len())
}

func TestTopN_MissingColumn(t *testing.T) {
	_, err := TopN(domain.ResultTable{Columns: []string{"Ticker"}}, "monthly_return", 5, true)
	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func cumulativeTable(finals map[string]float64, tickers []string) domain.ResultTable {
	table := domain.ResultTable{Columns: []string{"date", "Ticker", "cumulative_return"}}
	for d := 1; d <= 3; d++ {
		for _, ticker := range tickers {
			value := float64(d) / 100
			if d == 3 {
				value = finals[ticker]
			}
			table.Rows = append(table.Rows, []any{day(d), ticker, value})
		}
	}
	return table
}

func TestTopCumulativeReturns_AllFive(t *testing.T) {
	finals := map[string]float64{"A": 0.5, "B": 0.9, "C": 0.2, "D": 0.7, "E": 0.1}
	table := cumulativeTable(finals, []string{"A", "B", "C", "D", "E"})

	series, top, err := TopCumulativeReturns(table, 5)
	require.NoError(t, err)

	assert.Equal(t, []any{"B", "D", "A", "C", "E"}, column(top, "Ticker"))
	assert.Equal(t, []any{0.9, 0.7, 0.5, 0.2, 0.1}, column(top, "cumulative_return"))
	assert.Equal(t, table.Len(), series.Len())
	assert.Equal(t, table, series)
}

func TestTopCumulativeReturns_DropsBeyondTopFive(t *testing.T) {
	finals := map[string]float64{"A": 0.5, "B": 0.9, "C": 0.2, "D": 0.7, "E": 0.1, "F": 0.05}
	table := cumulativeTable(finals, []string{"A", "B", "C", "D", "E", "F"})

	series, top, err := TopCumulativeReturns(table, 5)
	require.NoError(t, err)

	assert.Equal(t, []any{"B", "D", "A", "C", "E"}, column(top, "Ticker"))
	assert.Equal(t, 15, series.Len())
	assert.NotContains(t, column(series, "Ticker"), "F")
	for _, ticker := range []string{"A", "B", "C", "D", "E"} {
		count := 0
		for _, v := range column(series, "Ticker") {
			if v == ticker {
				count++
			}
		}
		assert.Equal(t, 3, count, ticker)
	}
}

func TestTopCumulativeReturns_LastByDateNotByRowOrder(t *testing.T) {
	table := domain.ResultTable{
		Columns: []string{"date", "Ticker", "cumulative_return"},
		Rows: [][]any{
			{"2024-01-03", "A", 0.3},
			{"2024-01-01", "A", 0.9},
			{"2024-01-02", "B", 0.5},
		},
	}

	series, top, err := TopCumulativeReturns(table, 1)
	require.NoError(t, err)

	assert.Equal(t, []any{"B"}, column(top, "Ticker"))
	assert.Equal(t, [][]any{{day(2), "B", 0.5}}, series.Rows)
}

func TestTopCumulativeReturns_BadDate(t *testing.T) {
	table := domain.ResultTable{
		Columns: []string{"date", "Ticker", "cumulative_return"},
		Rows:    [][]any{{"not a date", "A", 0.1}},
	}

	_, _, err := TopCumulativeReturns(table, 5)
	assert.ErrorIs(t, err, domain.ErrRenderFailure)
}

func TestTopCumulativeReturns_MissingColumns(t *testing.T) {
	_, _, err := TopCumulativeReturns(domain.ResultTable{Columns: []string{"Ticker"}}, 5)

	var mismatch *domain.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"cumulative_return", "date"}, mismatch.Missing)
}

func TestTopCumulativeReturns_SkipsNullReturns(t *testing.T) {
	table := domain.ResultTable{
		Columns: []string{"date", "Ticker", "cumulative_return"},
		Rows: [][]any{
			{"2024-01-01", "A", 0.2},
			{"2024-01-02", "A", nil},
			{"2024-01-01", "B", 0.5},
			{"2024-01-02", "B", 0.1},
			{"2024-01-01", "C", nil},
		},
	}

	series, top, err := TopCumulativeReturns(table, 3)
	require.NoError(t, err)

	assert.Equal(t, []any{"A", "B", "C"}, column(top, "Ticker"))
	assert.Equal(t, []any{0.2, 0.1, nil}, column(top, "cumulative_return"))
	assert.Equal(t, 5, series.Len())
}
