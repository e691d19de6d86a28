package adapters

import (
	"time"

	"github.com/de-tools/stock-atlas/pkg/models/api"
	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// MapCellDomainToApi keeps numbers and strings as-is and formats dates the
// way the text renderer does. NaN and infinities become null.
func MapCellDomainToApi(v any) any {
	switch c := v.(type) {
	case time.Time:
		return domain.AsString(c)
	case float64:
		if !domain.IsFinite(c) {
			return nil
		}
		return c
	case nil, string, bool:
		return c
	}
	if f, ok := domain.AsFloat(v); ok {
		return f
	}
	return domain.AsString(v)
}

func MapTableDomainToApi(title string, t domain.ResultTable) api.Table {
	res := api.Table{
		Title:   title,
		Columns: append([]string{}, t.Columns...),
		Rows:    make([][]any, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		out := make([]any, len(row))
		for i, v := range row {
			out[i] = MapCellDomainToApi(v)
		}
		res.Rows = append(res.Rows, out)
	}
	return res
}

func MapChartDomainToApi(c domain.ChartSpec) api.Chart {
	res := api.Chart{
		Kind:       string(c.Kind),
		Title:      c.Title,
		X:          c.X,
		Y:          c.Y,
		Color:      c.Color,
		Text:       c.Text,
		Template:   c.Template,
		ColorScale: c.ColorScale,
		Options: api.ChartOptions{
			Annotate:   c.Options.Annotate,
			TextFormat: c.Options.TextFormat,
			LineWidth:  c.Options.LineWidth,
			XTickAngle: c.Options.XTickAngle,
			XLabel:     c.Options.XLabel,
			YLabel:     c.Options.YLabel,
			YGrid:      c.Options.YGrid,
		},
	}
	if c.Matrix != nil {
		res.Heatmap = &api.Heatmap{X: c.Matrix.XLabels, Y: c.Matrix.YLabels, Z: c.Matrix.Z}
	} else {
		data := MapTableDomainToApi("", c.Data)
		res.Data = &data
	}
	return res
}

func MapReportDomainToApi(r domain.ReportResult) api.Report {
	res := api.Report{
		ID:      string(r.ID),
		Title:   r.Title,
		State:   string(r.State),
		Month:   r.Month,
		Months:  r.Months,
		Tables:  make([]api.Table, 0, len(r.Tables)),
		Charts:  make([]api.Chart, 0, len(r.Charts)),
		Metrics: make([]api.Metric, 0, len(r.Metrics)),
		Banners: make([]api.Banner, 0, len(r.Banners)),
	}
	for _, t := range r.Tables {
		res.Tables = append(res.Tables, MapTableDomainToApi(t.Title, t.Table))
	}
	for _, c := range r.Charts {
		res.Charts = append(res.Charts, MapChartDomainToApi(c))
	}
	for _, m := range r.Metrics {
		res.Metrics = append(res.Metrics, api.Metric{Label: m.Label, Value: m.Value, Delta: m.Delta})
	}
	for _, b := range r.Banners {
		res.Banners = append(res.Banners, api.Banner{
			Level:   string(b.Level),
			Kind:    string(b.Kind),
			Message: b.Message,
		})
	}
	return res
}
