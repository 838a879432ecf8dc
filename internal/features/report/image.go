package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"patient-reports/pkg/reportviz"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	imageWidth  = 960
	imageHeight = 480
)

// ChartPNG draws a rendered series, pie or scatter chart as a PNG. Multi-series
// bar charts are drawn as marked lines. Tables, summaries, heatmaps and empty
// states have no image form.
func ChartPNG(spec reportviz.RenderSpec) ([]byte, error) {
	if spec.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrImageUnsupported, spec.Message)
	}
	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case reportviz.KindSeries:
		if spec.ChartType == reportviz.ChartTypeBar && len(spec.Series.Series) == 1 {
			err = barChart(spec).Render(chart.PNG, &buf)
		} else {
			c := seriesChart(spec)
			err = c.Render(chart.PNG, &buf)
		}
	case reportviz.KindPie:
		err = pieChart(spec).Render(chart.PNG, &buf)
	case reportviz.KindScatter:
		if len(spec.Scatter.Points) == 0 {
			return nil, fmt.Errorf("%w: scatter chart has no points", ErrImageUnsupported)
		}
		c := scatterChart(spec)
		err = c.Render(chart.PNG, &buf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrImageUnsupported, spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("draw chart %d: %w", spec.Index+1, err)
	}
	return buf.Bytes(), nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func barChart(spec reportviz.RenderSpec) chart.BarChart {
	s := spec.Series.Series[0]
	bars := make([]chart.Value, len(spec.Series.Categories))
	for i, category := range spec.Series.Categories {
		bars[i] = chart.Value{
			Label: category,
			Value: s.Values[i],
			Style: chart.Style{FillColor: color(s.Color), StrokeColor: color(s.Color)},
		}
	}
	return chart.BarChart{
		Title:    spec.Title,
		Width:    imageWidth,
		Height:   imageHeight,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}
}

// seriesChart plots every series against the category positions; categories
// become x-axis tick labels.
func seriesChart(spec reportviz.RenderSpec) *chart.Chart {
	sc := spec.Series
	xs := make([]float64, len(sc.Categories))
	ticks := make([]chart.Tick, len(sc.Categories))
	for i, category := range sc.Categories {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: category}
	}
	// Continuous series need a non-zero x range.
	if len(xs) == 1 {
		xs = append(xs, 1)
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}

	series := make([]chart.Series, 0, len(sc.Series))
	for _, s := range sc.Series {
		ys := append([]float64(nil), s.Values...)
		if len(ys) < len(xs) {
			ys = append(ys, ys[len(ys)-1])
		}
		style := chart.Style{StrokeColor: color(s.Color), StrokeWidth: 2}
		if spec.ChartType == reportviz.ChartTypeArea {
			style.FillColor = color(s.Color).WithAlpha(64)
		}
		if spec.ChartType == reportviz.ChartTypeBar {
			style.DotWidth = 5
			style.DotColor = color(s.Color)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
	}

	c := &chart.Chart{
		Title:      spec.Title,
		Width:      imageWidth,
		Height:     imageHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  reportviz.Humanize(sc.CategoryKey),
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]},
		},
		YAxis:  yAxis(reportviz.Humanize(sc.ValueKey), allValues(sc)),
		Series: series,
	}
	if len(series) > 1 {
		c.Elements = []chart.Renderable{chart.Legend(c)}
	}
	return c
}

func pieChart(spec reportviz.RenderSpec) chart.PieChart {
	values := make([]chart.Value, 0, len(spec.Pie.Segments))
	for _, seg := range spec.Pie.Segments {
		if seg.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.2f%%)", seg.Label, seg.Percentage),
			Value: seg.Value,
			Style: chart.Style{FillColor: color(seg.Color)},
		})
	}
	return chart.PieChart{
		Title:  spec.Title,
		Width:  imageHeight,
		Height: imageHeight,
		Values: values,
	}
}

func scatterChart(spec reportviz.RenderSpec) *chart.Chart {
	sc := spec.Scatter
	xs := make([]float64, 0, len(sc.Points)+1)
	ys := make([]float64, 0, len(sc.Points)+1)
	for _, p := range sc.Points {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	return &chart.Chart{
		Title:      spec.Title,
		Width:      imageWidth,
		Height:     imageHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: reportviz.Humanize(sc.XKey)},
		YAxis:      yAxis(reportviz.Humanize(sc.YKey), ys),
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    color(sc.Color),
			},
		}},
	}
}

func allValues(sc *reportviz.SeriesChart) []float64 {
	var out []float64
	for _, s := range sc.Series {
		out = append(out, s.Values...)
	}
	return out
}

// yAxis lets go-chart fit the axis, except when every value is equal: go-chart
// rejects a zero range, so the axis is widened around the value.
func yAxis(name string, values []float64) chart.YAxis {
	axis := chart.YAxis{Name: name}
	if len(values) == 0 {
		return axis
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		axis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return axis
}
