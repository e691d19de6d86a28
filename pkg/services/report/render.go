package report

import (
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// Rendering is the Render stage output for one report.
type Rendering struct {
	Tables  []domain.TableDisplay
	Charts  []domain.ChartSpec
	Metrics []domain.Metric
}

// numeric returns a copy of table whose columns hold float64 only. Numeric
// strings are coerced; anything else, NaN and Inf included, is a render
// failure. With nullable set, nil cells stay nil and draw as gaps.
func numeric(table domain.ResultTable, nullable bool, columns ...string) (domain.ResultTable, error) {
	out := table.Clone()
	for _, column := range columns {
		col, ok := out.ColumnIndex(column)
		if !ok {
			return domain.ResultTable{}, fmt.Errorf("%w: column %s not found", domain.ErrRenderFailure, column)
		}
		for i, row := range out.Rows {
			if nullable && row[col] == nil {
				continue
			}
			f, ok := domain.AsFloat(row[col])
			if !ok {
				return domain.ResultTable{}, fmt.Errorf("%w: non-numeric %s value %v in row %d",
					domain.ErrRenderFailure, column, row[col], i)
			}
			row[col] = f
		}
	}
	return out, nil
}

// BarChart encodes y as both bar height and continuous color, labelling bars
// with their value.
func BarChart(table domain.ResultTable, x, y, title, template, colorScale string) (domain.ChartSpec, error) {
	data, err := numeric(table, false, y)
	if err != nil {
		return domain.ChartSpec{}, err
	}
	if _, ok := data.ColumnIndex(x); !ok {
		return domain.ChartSpec{}, fmt.Errorf("%w: column %s not found", domain.ErrRenderFailure, x)
	}
	return domain.ChartSpec{
		Kind:       domain.ChartBar,
		Title:      title,
		X:          x,
		Y:          y,
		Color:      y,
		Text:       y,
		Template:   template,
		ColorScale: colorScale,
		Data:       data,
	}, nil
}

// LineChart draws one line per distinct value of color. Missing y values
// are kept as gaps.
func LineChart(table domain.ResultTable, x, y, color, title, template string) (domain.ChartSpec, error) {
	data, err := numeric(table, true, y)
	if err != nil {
		return domain.ChartSpec{}, err
	}
	for _, column := range []string{x, color} {
		if _, ok := data.ColumnIndex(column); !ok {
			return domain.ChartSpec{}, fmt.Errorf("%w: column %s not found", domain.ErrRenderFailure, column)
		}
	}
	return domain.ChartSpec{
		Kind:     domain.ChartLine,
		Title:    title,
		X:        x,
		Y:        y,
		Color:    color,
		Template: template,
		Data:     data,
	}, nil
}

// Heatmap turns a matrix keyed by index (row labels) into a heatmap spec. All
// other columns become the x labels and must be numeric.
func Heatmap(table domain.ResultTable, index, title, colorScale string) (domain.ChartSpec, error) {
	idx, ok := table.ColumnIndex(index)
	if !ok {
		return domain.ChartSpec{}, fmt.Errorf("%w: column %s not found", domain.ErrRenderFailure, index)
	}

	matrix := &domain.HeatmapMatrix{}
	for i, column := range table.Columns {
		if i != idx {
			matrix.XLabels = append(matrix.XLabels, column)
		}
	}
	for r, row := range table.Rows {
		matrix.YLabels = append(matrix.YLabels, domain.AsString(row[idx]))
		z := make([]float64, 0, len(matrix.XLabels))
		for i, cell := range row {
			if i == idx {
				continue
			}
			f, ok := domain.AsFloat(cell)
			if !ok {
				return domain.ChartSpec{}, fmt.Errorf("%w: non-numeric %s value %v for %s in row %d",
					domain.ErrRenderFailure, table.Columns[i], cell, matrix.YLabels[r], r)
			}
			z = append(z, f)
		}
		matrix.Z = append(matrix.Z, z)
	}

	return domain.ChartSpec{
		Kind:       domain.ChartHeatmap,
		Title:      title,
		X:          index,
		Y:          index,
		ColorScale: colorScale,
		Options: domain.ChartOptions{
			Annotate:   true,
			TextFormat: ".2f",
			LineWidth:  0.5,
		},
		Matrix: matrix,
	}, nil
}
