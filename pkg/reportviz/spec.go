package reportviz

import "time"

// Kind tells the UI which primitive draws a RenderSpec.
type Kind string

const (
	KindSeries  Kind = "series"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	KindHeatmap Kind = "heatmap"
	KindTable   Kind = "table"
	KindSummary Kind = "summary"
	KindEmpty   Kind = "empty"
	KindError   Kind = "error"
)

// RenderSpec is the render-ready output for one chart. Exactly one of the
// payload pointers is set, matching Kind; empty and error specs only carry Message.
type RenderSpec struct {
	Kind      Kind      `json:"kind"`
	Index     int       `json:"index"`
	Title     string    `json:"title,omitempty"`
	ChartType ChartType `json:"chartType,omitempty"`
	Renderer  string    `json:"renderer,omitempty"`
	Message   string    `json:"message,omitempty"`

	Series  *SeriesChart  `json:"series,omitempty"`
	Pie     *PieChart     `json:"pie,omitempty"`
	Scatter *ScatterChart `json:"scatter,omitempty"`
	Heatmap *Heatmap      `json:"heatmap,omitempty"`
	Table   *Table        `json:"table,omitempty"`
	Summary *Summary      `json:"summary,omitempty"`
}

// IsEmpty reports whether the spec is an empty or error state.
func (s RenderSpec) IsEmpty() bool {
	return s.Kind == KindEmpty || s.Kind == KindError
}

type SeriesChart struct {
	CategoryKey string   `json:"categoryKey"`
	ValueKey    string   `json:"valueKey"`
	Categories  []string `json:"categories"`
	Series      []Series `json:"series"`
}

type Series struct {
	Name   string    `json:"name"`
	Key    string    `json:"key"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

type PieChart struct {
	Total    float64      `json:"total"`
	Segments []PieSegment `json:"segments"`
}

type PieSegment struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type ScatterChart struct {
	XKey   string         `json:"xKey"`
	YKey   string         `json:"yKey"`
	Points []ScatterPoint `json:"points"`
	Color  string         `json:"color"`
}

type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

type HeatmapLayout string

const (
	HeatmapStatusTransition HeatmapLayout = "status-transition"
	HeatmapTemporal         HeatmapLayout = "temporal"
	HeatmapGeneric          HeatmapLayout = "generic"
)

type Heatmap struct {
	Layout HeatmapLayout   `json:"layout"`
	Rows   []string        `json:"rows"`
	Cols   []string        `json:"cols"`
	Cells  [][]HeatmapCell `json:"cells"`
	Max    float64         `json:"max"`
}

type HeatmapCell struct {
	Value     float64 `json:"value"`
	Intensity float64 `json:"intensity"`
	Fill      string  `json:"fill"`
}

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Table struct {
	Title   string     `json:"title,omitempty"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type SummaryVariant string

const (
	SummaryPatient     SummaryVariant = "patient-summary"
	SummaryStatus      SummaryVariant = "status-summary"
	SummaryVisit       SummaryVariant = "visit-summary"
	SummaryComparative SummaryVariant = "comparative-summary"
	SummaryGeneric     SummaryVariant = "generic-summary"
)

type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Raw   any    `json:"raw,omitempty"`
}

type Summary struct {
	Variant  SummaryVariant `json:"variant"`
	Metrics  []Metric       `json:"metrics"`
	Sections []Table        `json:"sections,omitempty"`
}

// RenderedReport is a whole generated report turned into chart specs.
type RenderedReport struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Type        ReportType   `json:"type,omitempty"`
	GeneratedAt time.Time    `json:"generatedAt,omitempty"`
	Charts      []RenderSpec `json:"charts"`
}

func emptySpec(index int, title, message string) RenderSpec {
	return RenderSpec{Kind: KindEmpty, Index: index, Title: title, Message: message}
}
