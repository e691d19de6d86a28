package api

type ReportEntry struct {
	ID    string `json:"id"`
	Menu  string `json:"menu"`
	Title string `json:"title"`
}

type Table struct {
	Title   string   `json:"title,omitempty"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type ChartOptions struct {
	Annotate   bool    `json:"annotate,omitempty"`
	TextFormat string  `json:"text_format,omitempty"`
	LineWidth  float64 `json:"line_width,omitempty"`
	XTickAngle int     `json:"x_tick_angle,omitempty"`
	XLabel     string  `json:"x_label,omitempty"`
	YLabel     string  `json:"y_label,omitempty"`
	YGrid      bool    `json:"y_grid,omitempty"`
}

type Heatmap struct {
	X []string    `json:"x"`
	Y []string    `json:"y"`
	Z [][]float64 `json:"z"`
}

type Chart struct {
	Kind       string       `json:"kind"`
	Title      string       `json:"title"`
	X          string       `json:"x,omitempty"`
	Y          string       `json:"y,omitempty"`
	Color      string       `json:"color,omitempty"`
	Text       string       `json:"text,omitempty"`
	Template   string       `json:"template,omitempty"`
	ColorScale string       `json:"color_scale,omitempty"`
	Options    ChartOptions `json:"options"`
	Data       *Table       `json:"data,omitempty"`
	Heatmap    *Heatmap     `json:"heatmap,omitempty"`
}

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

type Banner struct {
	Level   string `json:"level"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Report struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	State   string   `json:"state"`
	Month   string   `json:"month,omitempty"`
	Months  []string `json:"months,omitempty"`
	Tables  []Table  `json:"tables"`
	Charts  []Chart  `json:"charts"`
	Metrics []Metric `json:"metrics"`
	Banners []Banner `json:"banners"`
}

type Months struct {
	Months []string `json:"months"`
}

type Error struct {
	Error string `json:"error"`
}
