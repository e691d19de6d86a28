package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

type TableConfig struct {
	MaxColumnWidth int
	MaxRows        int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxColumnWidth: 24,
		MaxRows:        50,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}}{{if .Month}} ({{.Month}}){{end}}
{{range .Banners}}
[{{upper .Level}}] {{.Message}}
{{end}}{{range .Metrics}}
{{.Label}}: {{.Value}}{{if .Delta}} ({{.Delta}}){{end}}
{{end}}{{range .Charts}}
* {{chart .}}
{{end}}{{range .Tables}}
=== {{.Title}} ===
{{table .Table}}{{end}}`

func (c *Reporter) Handle(result *domain.ReportResult) error {
	funcMap := template.FuncMap{
		"upper": func(l domain.BannerLevel) string { return strings.ToUpper(string(l)) },
		"chart": describeChart,
		"table": c.formatTable,
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}

func describeChart(chart domain.ChartSpec) string {
	switch chart.Kind {
	case domain.ChartHeatmap:
		n := 0
		if chart.Matrix != nil {
			n = len(chart.Matrix.XLabels)
		}
		return fmt.Sprintf("%s: heatmap %dx%d, %s", chart.Title, n, n, chart.ColorScale)
	case domain.ChartLine:
		return fmt.Sprintf("%s: line %s over %s by %s", chart.Title, chart.Y, chart.X, chart.Color)
	default:
		return fmt.Sprintf("%s: bar %s by %s, %s", chart.Title, chart.Y, chart.X, chart.ColorScale)
	}
}

func (c *Reporter) formatTable(table domain.ResultTable) string {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}

	rows := table.Rows
	if c.config.MaxRows > 0 && len(rows) > c.config.MaxRows {
		rows = rows[:c.config.MaxRows]
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(table.Columns))
		for i := range table.Columns {
			var v any
			if i < len(row) {
				v = row[i]
			}
			s := c.truncate(formatCell(v))
			cells[r][i] = s
			widths[i] = max(widths[i], utf8.RuneCountInString(s))
		}
	}

	var b strings.Builder
	separator := func() {
		b.WriteString("+")
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteString("+")
		}
		b.WriteString("\n")
	}
	line := func(values []string) {
		b.WriteString("|")
		for i, v := range values {
			fmt.Fprintf(&b, " %-*s |", widths[i], v)
		}
		b.WriteString("\n")
	}

	separator()
	line(table.Columns)
	separator()
	for _, row := range cells {
		line(row)
	}
	separator()
	if len(rows) < len(table.Rows) {
		fmt.Fprintf(&b, "(%d more rows)\n", len(table.Rows)-len(rows))
	}
	return b.String()
}

func formatCell(v any) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.4f", f)
	}
	return domain.AsString(v)
}

func (c *Reporter) truncate(s string) string {
	if c.config.MaxColumnWidth <= 0 || utf8.RuneCountInString(s) <= c.config.MaxColumnWidth {
		return s
	}
	r := []rune(s)
	return string(r[:c.config.MaxColumnWidth-1]) + "…"
}
