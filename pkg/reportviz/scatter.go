package reportviz

var (
	scatterXKeys = []string{"x", "period", "label", "name"}
	scatterYKeys = []string{"y", "count", "value"}
)

// renderScatter plots numeric x values as is; categorical x values are placed at
// their position in the data.
func renderScatter(points []map[string]any) *ScatterChart {
	first := points[0]
	chart := &ScatterChart{
		XKey:   firstPresent(first, scatterXKeys, "x"),
		YKey:   firstPresent(first, scatterYKeys, "y"),
		Points: make([]ScatterPoint, 0, len(points)),
		Color:  ColorForSeries(0),
	}
	for i, point := range points {
		y, ok := toFloat(point[chart.YKey])
		if !ok {
			continue
		}
		x, numeric := toFloat(point[chart.XKey])
		if !numeric {
			x = float64(i)
		}
		label := stringField(point, "label")
		if label == "" {
			label = labelOf(point[chart.XKey])
		}
		chart.Points = append(chart.Points, ScatterPoint{X: x, Y: y, Label: label})
	}
	return chart
}
