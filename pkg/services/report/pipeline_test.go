package report

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/de-tools/stock-atlas/pkg/metrics"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestController_RendersEveryReport(t *testing.T) {
	ctx := testContext(t)
	ctrl := NewController(newHealthyResolver(), nil)

	for _, id := range domain.ReportIDs {
		t.Run(string(id), func(t *testing.T) {
			result, err := ctrl.Run(ctx, domain.ReportRequest{ID: id})
			require.NoError(t, err)

			assert.Equal(t, domain.StateRendered, result.State)
			assert.Empty(t, result.Banners)
			if id != domain.ReportHome {
				assert.NotEmpty(t, result.Charts)
			}
		})
	}
}

func TestController_DataUnavailableIsReportLocal(t *testing.T) {
	ctx := testContext(t)
	m, err := metrics.New()
	require.NoError(t, err)
	ctrl := NewController(newFailingResolver(), m)

	result, err := ctrl.Run(ctx, domain.ReportRequest{ID: domain.ReportVolatility})
	require.NoError(t, err)
	assert.Equal(t, domain.StateError, result.State)
	assert.Equal(t, []domain.Banner{{
		Level:   domain.BannerWarning,
		Kind:    domain.BannerDataUnavailable,
		Message: "No data found for Volatility Analysis.",
	}}, result.Banners)
	assert.Empty(t, result.Charts)
	assert.Empty(t, result.Tables)

	home, err := ctrl.Run(ctx, domain.ReportRequest{ID: domain.ReportHome})
	require.NoError(t, err)
	assert.Equal(t, domain.StateRendered, home.State)

	count, err := testutil.GatherAndCount(m.Registry(), "stock_atlas_report_renders_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestController_SchemaMismatchShowsActualTable(t *testing.T) {
	actual := domain.ResultTable{
		Columns: []string{"Ticker", "volatility_pct"},
		Rows:    [][]any{{"AAA", 0.9}},
	}
	store := new(mockStore)
	store.On("Volatility", mock.Anything).Return(actual, nil)
	ctrl := NewController(NewResolver(store, nil, ""), nil)

	result, err := ctrl.Run(testContext(t), domain.ReportRequest{ID: domain.ReportVolatility})
	require.NoError(t, err)

	assert.Equal(t, domain.StateError, result.State)
	require.Len(t, result.Banners, 1)
	assert.Equal(t, domain.BannerSchemaMismatch, result.Banners[0].Kind)
	assert.Equal(t, domain.BannerError, result.Banners[0].Level)
	assert.Equal(t, "expected columns not found: Volatility", result.Banners[0].Message)
	require.Len(t, result.Tables, 1)
	assert.Equal(t, actual, result.Tables[0].Table)
	assert.Empty(t, result.Charts)
}

func TestController_RenderFailure(t *testing.T) {
	malformed := domain.ResultTable{
		Columns: []string{"Ticker", "Volatility"},
		Rows:    [][]any{{"AAA", "very high"}},
	}
	store := new(mockStore)
	store.On("Volatility", mock.Anything).Return(malformed, nil)
	ctrl := NewController(NewResolver(store, nil, ""), nil)

	result, err := ctrl.Run(testContext(t), domain.ReportRequest{ID: domain.ReportVolatility})
	require.NoError(t, err)

	assert.Equal(t, domain.StateError, result.State)
	require.Len(t, result.Banners, 1)
	assert.Equal(t, domain.BannerRenderFailure, result.Banners[0].Kind)
	require.Len(t, result.Tables, 1)
	assert.Equal(t, malformed, result.Tables[0].Table)
}

func TestController_RecoversRenderPanic(t *testing.T) {
	def := Definition{
		ID: "panicky",
		transform: func(domain.ResultTable) ([]domain.TableDisplay, error) {
			return nil, nil
		},
		render: func(tables []domain.TableDisplay) (Rendering, error) {
			_ = tables[0]
			return Rendering{}, nil
		},
	}

	_, err := transformAndRender(def, domain.ResultTable{})
	assert.ErrorIs(t, err, domain.ErrRenderFailure)
}

func TestController_UnknownReport(t *testing.T) {
	_, err := NewController(newHealthyResolver(), nil).Run(testContext(t), domain.ReportRequest{ID: "portfolio"})
	assert.ErrorIs(t, err, domain.ErrUnknownReport)
}

func TestController_Idempotent(t *testing.T) {
	ctx := testContext(t)
	ctrl := NewController(newHealthyResolver(), nil)

	for _, id := range domain.ReportIDs {
		first, err := ctrl.Run(ctx, domain.ReportRequest{ID: id, Month: "2024-03"})
		require.NoError(t, err)
		second, err := ctrl.Run(ctx, domain.ReportRequest{ID: id, Month: "2024-03"})
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), id)
	}
}

func TestController_GainersLosersMonths(t *testing.T) {
	ctrl := NewController(newHealthyResolver(), nil)

	result, err := ctrl.Run(testContext(t), domain.ReportRequest{ID: domain.ReportGainersLosers})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", result.Month)
	assert.Equal(t, []string{"2024-03", "2024-02"}, result.Months)

	months, err := ctrl.Months(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03", "2024-02"}, months)
}

func TestController_NonFiniteCorrelationIsRenderFailure(t *testing.T) {
	store := new(mockStore)
	store.On("Correlation", mock.Anything).Return(domain.ResultTable{
		Columns: []string{"Ticker", "AAA", "BBB"},
		Rows:    [][]any{{"AAA", 1.0, math.NaN()}, {"BBB", math.NaN(), 1.0}},
	}, nil)
	ctrl := NewController(NewResolver(store, nil, ""), nil)

	result, err := ctrl.Run(testContext(t), domain.ReportRequest{ID: domain.ReportCorrelation})
	require.NoError(t, err)

	assert.Equal(t, domain.StateError, result.State)
	require.Len(t, result.Banners, 1)
	assert.Equal(t, domain.BannerRenderFailure, result.Banners[0].Kind)
	assert.Empty(t, result.Charts)
}
