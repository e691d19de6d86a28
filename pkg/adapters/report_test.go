package adapters

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/de-tools/stock-atlas/pkg/models/api"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapReportDomainToApi(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	result := domain.ReportResult{
		ID:    domain.ReportCumulativeReturn,
		Title: "Top 5 Cumulative Returns Over Time",
		State: domain.StateRendered,
		Tables: []domain.TableDisplay{{
			Title: "Final Cumulative Return",
			Table: domain.ResultTable{
				Columns: []string{"date", "Ticker", "cumulative_return"},
				Rows:    [][]any{{day, "AAA", 0.5}},
			},
		}},
		Charts: []domain.ChartSpec{{
			Kind:  domain.ChartLine,
			Title: "Top 5 Stocks by Cumulative Return",
			X:     "date",
			Y:     "cumulative_return",
			Color: "Ticker",
			Data: domain.ResultTable{
				Columns: []string{"date", "Ticker", "cumulative_return"},
				Rows:    [][]any{{day, "AAA", int64(2)}},
			},
		}},
	}

	got := MapReportDomainToApi(result)

	assert.Equal(t, "cumulative-return", got.ID)
	assert.Equal(t, "rendered", got.State)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, []any{"2024-03-01", "AAA", 0.5}, got.Tables[0].Rows[0])
	require.Len(t, got.Charts, 1)
	require.NotNil(t, got.Charts[0].Data)
	assert.Nil(t, got.Charts[0].Heatmap)
	assert.Equal(t, []any{"2024-03-01", "AAA", 2.0}, got.Charts[0].Data.Rows[0])
	assert.Empty(t, got.Banners)
	assert.NotNil(t, got.Banners)
}

func TestMapChartDomainToApi_Heatmap(t *testing.T) {
	got := MapChartDomainToApi(domain.ChartSpec{
		Kind:    domain.ChartHeatmap,
		Options: domain.ChartOptions{Annotate: true, TextFormat: ".2f", LineWidth: 0.5},
		Matrix: &domain.HeatmapMatrix{
			XLabels: []string{"AAA", "BBB"},
			YLabels: []string{"AAA", "BBB"},
			Z:       [][]float64{{1, 0.3}, {0.3, 1}},
		},
	})

	assert.Nil(t, got.Data)
	assert.Equal(t, &api.Heatmap{
		X: []string{"AAA", "BBB"},
		Y: []string{"AAA", "BBB"},
		Z: [][]float64{{1, 0.3}, {0.3, 1}},
	}, got.Heatmap)
	assert.True(t, got.Options.Annotate)
}

func TestMapReportDomainToApi_Banners(t *testing.T) {
	r := domain.ReportResult{ID: domain.ReportVolatility, State: domain.StateError}
	r.Warn(domain.BannerDataUnavailable, "No data found for Volatility Analysis.")

	got := MapReportDomainToApi(r)
	assert.Equal(t, []api.Banner{{
		Level:   "warning",
		Kind:    "DataUnavailable",
		Message: "No data found for Volatility Analysis.",
	}}, got.Banners)
}

func TestMapTableDomainToApi_NonFiniteIsNull(t *testing.T) {
	got := MapTableDomainToApi("Correlation Matrix", domain.ResultTable{
		Columns: []string{"Ticker", "AAA", "BBB"},
		Rows:    [][]any{{"AAA", math.NaN(), math.Inf(1)}},
	})

	assert.Equal(t, []any{"AAA", nil, nil}, got.Rows[0])
	_, err := json.Marshal(got)
	assert.NoError(t, err)
}
