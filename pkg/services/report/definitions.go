package report

import (
	"fmt"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// Definition fixes one report's schema contract and its transform and render
// stages. Transform output is a list of named tables consumed by render.
type Definition struct {
	ID       domain.ReportID
	Menu     string
	Title    string
	Expected []string

	transform func(domain.ResultTable) ([]domain.TableDisplay, error)
	render    func([]domain.TableDisplay) (Rendering, error)
}

func passThrough(title string) func(domain.ResultTable) ([]domain.TableDisplay, error) {
	return func(t domain.ResultTable) ([]domain.TableDisplay, error) {
		return []domain.TableDisplay{{Title: title, Table: t}}, nil
	}
}

var definitions = map[domain.ReportID]Definition{
	domain.ReportHome: {
		ID:        domain.ReportHome,
		Menu:      "Home",
		Title:     "Stock Analysis Dashboard",
		Expected:  []string{"Topic"},
		transform: passThrough("Welcome to your interactive dashboard to:"),
		render: func(tables []domain.TableDisplay) (Rendering, error) {
			return Rendering{Tables: tables}, nil
		},
	},
	domain.ReportVolatility: {
		ID:        domain.ReportVolatility,
		Menu:      "Volatility Analysis",
		Title:     "Top 10 Most Volatile Stocks",
		Expected:  []string{"Ticker", "Volatility"},
		transform: passThrough("Top 10 Volatile Stocks"),
		render:    renderVolatility,
	},
	domain.ReportCumulativeReturn: {
		ID:        domain.ReportCumulativeReturn,
		Menu:      "Cumulative Returns",
		Title:     "Top 5 Cumulative Returns Over Time",
		Expected:  []string{"date", "Ticker", "cumulative_return"},
		transform: transformCumulative,
		render:    renderCumulative,
	},
	domain.ReportSectorPerformance: {
		ID:        domain.ReportSectorPerformance,
		Menu:      "Sector Performance",
		Title:     "Sector Performance Dashboard",
		Expected:  []string{"Sector", "Average_Yearly_Return"},
		transform: passThrough("Sector Performance"),
		render:    renderSector,
	},
	domain.ReportCorrelation: {
		ID:        domain.ReportCorrelation,
		Menu:      "Stock Correlation",
		Title:     "Stock Price Correlation Heatmap",
		Expected:  []string{"Ticker"},
		transform: passThrough("Correlation Matrix"),
		render:    renderCorrelation,
	},
	domain.ReportGainersLosers: {
		ID:        domain.ReportGainersLosers,
		Menu:      "Gainers & Losers",
		Title:     "Monthly Gainers & Losers",
		Expected:  []string{"Ticker", "month", "monthly_return"},
		transform: transformGainersLosers,
		render:    renderGainersLosers,
	},
}

// Lookup returns the definition for id.
func Lookup(id domain.ReportID) (Definition, error) {
	def, ok := definitions[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", domain.ErrUnknownReport, id)
	}
	return def, nil
}

// Definitions lists every report in menu order.
func Definitions() []Definition {
	defs := make([]Definition, 0, len(domain.ReportIDs))
	for _, id := range domain.ReportIDs {
		defs = append(defs, definitions[id])
	}
	return defs
}

func (d Definition) Transform(table domain.ResultTable) ([]domain.TableDisplay, error) {
	return d.transform(table)
}

func (d Definition) Render(tables []domain.TableDisplay) (Rendering, error) {
	return d.render(tables)
}

func renderVolatility(tables []domain.TableDisplay) (Rendering, error) {
	top := tables[0].Table
	chart, err := BarChart(top, "Ticker", "Volatility", "Top 10 Volatile Stocks", "plotly_dark", "Reds")
	if err != nil {
		return Rendering{}, err
	}

	most, _ := domain.AsFloat(chart.Data.Value(0, "Volatility"))
	return Rendering{
		Tables: tables,
		Charts: []domain.ChartSpec{chart},
		Metrics: []domain.Metric{{
			Label: "Most Volatile",
			Value: domain.AsString(top.Value(0, "Ticker")),
			Delta: fmt.Sprintf("%.2f", most),
		}},
	}, nil
}

func transformCumulative(table domain.ResultTable) ([]domain.TableDisplay, error) {
	series, finals, err := TopCumulativeReturns(table, topCumulative)
	if err != nil {
		return nil, err
	}
	return []domain.TableDisplay{
		{Title: "Top 5 Stocks by Cumulative Return", Table: series},
		{Title: "Final Cumulative Return", Table: finals},
	}, nil
}

func renderCumulative(tables []domain.TableDisplay) (Rendering, error) {
	chart, err := LineChart(tables[0].Table, "date", "cumulative_return", "Ticker",
		"Top 5 Stocks by Cumulative Return", "plotly")
	if err != nil {
		return Rendering{}, err
	}
	return Rendering{
		Tables: tables[1:],
		Charts: []domain.ChartSpec{chart},
	}, nil
}

func renderSector(tables []domain.TableDisplay) (Rendering, error) {
	chart, err := BarChart(tables[0].Table, "Sector", "Average_Yearly_Return",
		"Average Yearly Return by Sector", "plotly_white", "Blues")
	if err != nil {
		return Rendering{}, err
	}
	chart.Options = domain.ChartOptions{
		XTickAngle: 90,
		XLabel:     "Sector",
		YLabel:     "Average_Yearly_Return",
		YGrid:      true,
	}
	return Rendering{
		Tables: tables,
		Charts: []domain.ChartSpec{chart},
	}, nil
}

func renderCorrelation(tables []domain.TableDisplay) (Rendering, error) {
	chart, err := Heatmap(tables[0].Table, "Ticker", "Stock Price Correlation Heatmap", "coolwarm")
	if err != nil {
		return Rendering{}, err
	}
	return Rendering{Charts: []domain.ChartSpec{chart}}, nil
}

func transformGainersLosers(table domain.ResultTable) ([]domain.TableDisplay, error) {
	gainers, losers, err := GainersLosers(table)
	if err != nil {
		return nil, err
	}
	return []domain.TableDisplay{
		{Title: "Top 5 Gainers", Table: gainers},
		{Title: "Top 5 Losers", Table: losers},
	}, nil
}

func renderGainersLosers(tables []domain.TableDisplay) (Rendering, error) {
	scales := []string{"Greens", "Reds"}
	out := Rendering{Tables: tables}
	for i, t := range tables {
		chart, err := BarChart(t.Table, "Ticker", "monthly_return", t.Title, "plotly_white", scales[i])
		if err != nil {
			return Rendering{}, err
		}
		out.Charts = append(out.Charts, chart)
	}
	return out, nil
}
