package stocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/stock-atlas/pkg/metrics"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/de-tools/stock-atlas/pkg/store/datasource"
	storesql "github.com/de-tools/stock-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
)

const (
	volatilityQuery       = `SELECT * FROM volatility_analysis ORDER BY Volatility DESC %s`
	cumulativeReturnQuery = `SELECT * FROM top_5_cumulative_return`
	correlationQuery      = `SELECT * FROM correlation_matrix`
	monthsQuery           = `SELECT DISTINCT month FROM top_gainers_losers ORDER BY month DESC`
	gainersLosersQuery    = `SELECT * FROM top_gainers_losers WHERE month = ?`

	VolatilityLimit = 10
)

// Store runs the fixed read-only queries behind the dashboard reports.
type Store interface {
	Volatility(ctx context.Context) (domain.ResultTable, error)
	CumulativeReturns(ctx context.Context) (domain.ResultTable, error)
	Correlation(ctx context.Context) (domain.ResultTable, error)
	Months(ctx context.Context) ([]string, error)
	GainersLosers(ctx context.Context, month string) (domain.ResultTable, error)
}

type Options struct {
	// QueryTimeout bounds each read; zero disables the deadline.
	QueryTimeout time.Duration
	Metrics      *metrics.Metrics
}

type sqlStore struct {
	db      *datasource.DB
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewStore(db *datasource.DB, opts Options) (Store, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &sqlStore{
		db:      db,
		timeout: opts.QueryTimeout,
		metrics: opts.Metrics,
	}, nil
}

func (s *sqlStore) Volatility(ctx context.Context) (domain.ResultTable, error) {
	return s.queryTable(ctx, "volatility", fmt.Sprintf(volatilityQuery, s.db.Dialect.Limit(VolatilityLimit)))
}

func (s *sqlStore) CumulativeReturns(ctx context.Context) (domain.ResultTable, error) {
	return s.queryTable(ctx, "cumulative_return", cumulativeReturnQuery)
}

func (s *sqlStore) Correlation(ctx context.Context) (domain.ResultTable, error) {
	return s.queryTable(ctx, "correlation", correlationQuery)
}

func (s *sqlStore) Months(ctx context.Context) ([]string, error) {
	table, err := s.queryTable(ctx, "months", monthsQuery)
	if err != nil {
		return nil, err
	}

	months := make([]string, 0, table.Len())
	for i := range table.Rows {
		if m := domain.AsString(table.Value(i, "month")); m != "" {
			months = append(months, m)
		}
	}
	return months, nil
}

// GainersLosers binds month as a query parameter; it is never spliced into SQL.
func (s *sqlStore) GainersLosers(ctx context.Context, month string) (domain.ResultTable, error) {
	return s.queryTable(ctx, "gainers_losers", gainersLosersQuery, month)
}

func (s *sqlStore) queryTable(ctx context.Context, name, query string, args ...any) (table domain.ResultTable, err error) {
	logger := zerolog.Ctx(ctx)
	started := time.Now()
	defer func() {
		s.metrics.RecordQuery(name, err, time.Since(started))
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows, err := s.db.QueryContext(ctx, s.db.Dialect.Rebind(query), args...)
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("%s query failed: %w", name, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Str("query", name).Msg("failed to close query rows")
		}
	}(rows)

	table, err = storesql.ScanTable(rows)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ResultTable{}, fmt.Errorf("%s query timed out: %w", name, err)
		}
		return domain.ResultTable{}, fmt.Errorf("%s query failed: %w", name, err)
	}

	logger.Debug().
		Str("query", name).
		Int("rows", table.Len()).
		Dur("elapsed", time.Since(started)).
		Msg("query completed")

	return table, nil
}
