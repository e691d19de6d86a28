package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/metrics"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Controller runs the resolve -> validate -> transform -> render pipeline.
// Failures stay local to the report and come back as banners.
type Controller interface {
	Run(ctx context.Context, req domain.ReportRequest) (*domain.ReportResult, error)
	Months(ctx context.Context) ([]string, error)
}

type controller struct {
	resolver Resolver
	metrics  *metrics.Metrics
}

func NewController(resolver Resolver, m *metrics.Metrics) Controller {
	return &controller{resolver: resolver, metrics: m}
}

func (c *controller) Months(ctx context.Context) ([]string, error) {
	return c.resolver.Months(ctx)
}

// Run only returns an error for an unknown report id.
func (c *controller) Run(ctx context.Context, req domain.ReportRequest) (*domain.ReportResult, error) {
	def, err := Lookup(req.ID)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("report", string(req.ID)).Logger()
	result := &domain.ReportResult{
		ID:    def.ID,
		Title: def.Title,
		State: domain.StateResolving,
		Month: req.Month,
	}

	res, err := c.resolver.Resolve(ctx, req)
	result.Months = res.Months
	if res.Month != "" {
		result.Month = res.Month
	}
	if err != nil {
		logger.Warn().Err(err).Msg("report data unavailable")
		result.State = domain.StateError
		result.Warn(domain.BannerDataUnavailable, fmt.Sprintf("No data found for %s.", def.Menu))
		c.metrics.RecordRender(string(def.ID), string(domain.BannerDataUnavailable))
		return result, nil
	}

	validation := Validate(res.Table, def.Expected)
	if !validation.OK() {
		logger.Error().Strs("missing", validation.Missing).Msg("report schema mismatch")
		result.State = domain.StateError
		result.Fail(domain.BannerSchemaMismatch, validation.Err().Error())
		result.Tables = []domain.TableDisplay{{Title: def.Title, Table: validation.Table}}
		c.metrics.RecordRender(string(def.ID), string(domain.BannerSchemaMismatch))
		return result, nil
	}
	result.State = domain.StateReady

	rendering, err := transformAndRender(def, validation.Table)
	if err != nil {
		logger.Error().Err(err).Msg("report render failed")
		result.State = domain.StateError
		result.Fail(domain.BannerRenderFailure, err.Error())
		result.Tables = []domain.TableDisplay{{Title: def.Title, Table: validation.Table}}
		c.metrics.RecordRender(string(def.ID), string(domain.BannerRenderFailure))
		return result, nil
	}

	result.Tables = rendering.Tables
	result.Charts = rendering.Charts
	result.Metrics = rendering.Metrics
	result.State = domain.StateRendered
	c.metrics.RecordRender(string(def.ID), string(domain.StateRendered))

	logger.Debug().
		Int("rows", validation.Table.Len()).
		Int("charts", len(result.Charts)).
		Msg("report rendered")

	return result, nil
}

// transformAndRender converts panics from malformed data into render failures.
func transformAndRender(def Definition, table domain.ResultTable) (out Rendering, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrRenderFailure, r)
		}
	}()

	tables, err := def.Transform(table)
	if err != nil {
		var mismatch *domain.SchemaMismatchError
		if errors.As(err, &mismatch) || errors.Is(err, domain.ErrRenderFailure) {
			return Rendering{}, err
		}
		return Rendering{}, fmt.Errorf("%w: %w", domain.ErrRenderFailure, err)
	}
	return def.Render(tables)
}
