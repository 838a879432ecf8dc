package reportviz

import (
	"fmt"
	"sort"
)

// Dispatcher picks the rendering strategy for one resolved chart.
type Dispatcher struct {
	formatter *Formatter
}

func NewDispatcher(formatter *Formatter) *Dispatcher {
	if formatter == nil {
		formatter = NewFormatter("en")
	}
	return &Dispatcher{formatter: formatter}
}

// EffectiveType is the type a result is rendered as: its own type tag, else the
// declared chart type, else summary.
func EffectiveType(r Result, declared ChartType) ChartType {
	if t, ok := r["type"].(string); ok && t != "" {
		return ChartType(t)
	}
	if declared != "" {
		return declared
	}
	return ChartTypeSummary
}

// Render turns one chart's dataset into a RenderSpec. A nil result yields the
// "no data" empty state; a shape that does not fit its type yields an empty state
// naming the type. Unknown types fall back to a raw field table.
func (d *Dispatcher) Render(r Result, declared ChartType, index int, title string) RenderSpec {
	if r == nil {
		return emptySpec(index, title, "No data available for this chart")
	}
	if title == "" {
		title = stringField(r, "title")
	}

	chartType := EffectiveType(r, declared)
	spec := RenderSpec{Index: index, Title: title, ChartType: chartType}

	switch chartType {
	case ChartTypeBar, ChartTypeLine, ChartTypeArea, ChartTypePie, ChartTypeScatter, ChartTypeHeatmap:
		points, ok := seriesPoints(r)
		if !ok {
			out := emptySpec(index, title, fmt.Sprintf("No %s chart data available", chartType))
			out.ChartType = chartType
			return out
		}
		switch chartType {
		case ChartTypePie:
			spec.Kind, spec.Renderer, spec.Pie = KindPie, "pie", renderPie(points)
		case ChartTypeScatter:
			spec.Kind, spec.Renderer, spec.Scatter = KindScatter, "scatter", renderScatter(points)
		case ChartTypeHeatmap:
			hm := renderHeatmap(points)
			spec.Kind, spec.Renderer, spec.Heatmap = KindHeatmap, "heatmap-"+string(hm.Layout), hm
		default:
			spec.Kind, spec.Renderer, spec.Series = KindSeries, string(chartType), renderSeries(points)
		}

	case ChartTypeTable:
		cols, rows, ok := extractTable(r)
		if !ok {
			out := emptySpec(index, title, "No table data available")
			out.ChartType = chartType
			return out
		}
		spec.Kind, spec.Renderer = KindTable, "table"
		spec.Table = buildTable(d.formatter, title, cols, rows)

	case ChartTypeSummary:
		variant := ClassifySummary(r)
		spec.Kind, spec.Renderer = KindSummary, string(variant)
		spec.Summary = renderSummary(d.formatter, r, variant)

	default:
		spec.Kind, spec.Renderer = KindTable, "raw"
		spec.Table = rawTable(d.formatter, title, r)
	}
	return spec
}

// seriesPoints returns the object points under result.data. Missing, empty or
// non-array data is reported as not ok.
func seriesPoints(r Result) ([]map[string]any, bool) {
	items, ok := asSlice(r["data"])
	if !ok || len(items) == 0 {
		return nil, false
	}
	points := asObjects(items)
	if len(points) == 0 {
		return nil, false
	}
	return points, true
}

// rawTable lists the scalar top-level fields of a result whose type has no
// dedicated renderer.
func rawTable(f *Formatter, title string, r Result) *Table {
	keys := make([]string, 0, len(r))
	for k, v := range r {
		if isScalar(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keyValueTable(f, title, r, keys)
}
