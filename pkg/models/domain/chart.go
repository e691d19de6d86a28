package domain

type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartLine    ChartKind = "line"
	ChartHeatmap ChartKind = "heatmap"
)

// ChartSpec is a declarative chart description for an external renderer.
// Bar and line charts reference columns of Data; heatmaps carry the matrix.
type ChartSpec struct {
	Kind       ChartKind
	Title      string
	X          string
	Y          string
	Color      string
	Text       string
	Template   string
	ColorScale string
	Options    ChartOptions
	Data       ResultTable
	Matrix     *HeatmapMatrix
}

type ChartOptions struct {
	Annotate   bool
	TextFormat string
	LineWidth  float64
	XTickAngle int
	XLabel     string
	YLabel     string
	YGrid      bool
}

type HeatmapMatrix struct {
	XLabels []string
	YLabels []string
	Z       [][]float64
}
