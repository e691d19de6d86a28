package report

import (
	"context"
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/de-tools/stock-atlas/pkg/store/stocks"
)

// TableReader reads a static tabular file from a location URI.
type TableReader interface {
	ReadCSV(ctx context.Context, location string) (domain.ResultTable, error)
}

// Resolution is a resolved report table plus the month context used for
// gainers-losers.
type Resolution struct {
	Table  domain.ResultTable
	Month  string
	Months []string
}

type Resolver interface {
	Resolve(ctx context.Context, req domain.ReportRequest) (Resolution, error)
	Months(ctx context.Context) ([]string, error)
}

type resolver struct {
	stocks    stocks.Store
	files     TableReader
	sectorCSV string
}

func NewResolver(store stocks.Store, files TableReader, sectorCSV string) Resolver {
	return &resolver{
		stocks:    store,
		files:     files,
		sectorCSV: sectorCSV,
	}
}

var homeTopics = domain.ResultTable{
	Columns: []string{"Topic"},
	Rows: [][]any{
		{"Analyze stock trends"},
		{"Discover top performers"},
		{"Explore volatility & correlation"},
		{"Compare sector-wise returns"},
	},
}

// Resolve runs the single read behind req. Failed and empty reads are
// reported as domain.ErrDataUnavailable.
func (r *resolver) Resolve(ctx context.Context, req domain.ReportRequest) (Resolution, error) {
	var (
		res Resolution
		err error
	)

	switch req.ID {
	case domain.ReportHome:
		res.Table = homeTopics.Clone()
	case domain.ReportVolatility:
		res.Table, err = r.stocks.Volatility(ctx)
	case domain.ReportCumulativeReturn:
		res.Table, err = r.stocks.CumulativeReturns(ctx)
	case domain.ReportSectorPerformance:
		if r.files == nil || r.sectorCSV == "" {
			return res, fmt.Errorf("%w: sector file location is not configured", domain.ErrDataUnavailable)
		}
		res.Table, err = r.files.ReadCSV(ctx, r.sectorCSV)
	case domain.ReportCorrelation:
		res.Table, err = r.stocks.Correlation(ctx)
	case domain.ReportGainersLosers:
		res, err = r.resolveGainersLosers(ctx, req.Month)
	default:
		return res, fmt.Errorf("%w: %q", domain.ErrUnknownReport, req.ID)
	}

	if err != nil {
		return res, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, req.ID, err)
	}
	if res.Table.Empty() {
		return res, fmt.Errorf("%w: no data found for %s", domain.ErrDataUnavailable, req.ID)
	}
	return res, nil
}

func (r *resolver) Months(ctx context.Context) ([]string, error) {
	months, err := r.stocks.Months(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: months: %w", domain.ErrDataUnavailable, err)
	}
	return months, nil
}

// resolveGainersLosers defaults an empty month to the most recent one.
func (r *resolver) resolveGainersLosers(ctx context.Context, month string) (Resolution, error) {
	months, err := r.stocks.Months(ctx)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{Months: months, Month: month}
	if res.Month == "" {
		if len(months) == 0 {
			return res, nil
		}
		res.Month = months[0]
	}

	res.Table, err = r.stocks.GainersLosers(ctx, res.Month)
	return res, err
}
