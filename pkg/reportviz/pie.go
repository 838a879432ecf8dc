package reportviz

import "math"

func renderPie(points []map[string]any) *PieChart {
	keys := InferSeriesKeys(points[0])
	pie := &PieChart{Segments: make([]PieSegment, 0, len(points))}
	for i, point := range points {
		v, _ := toFloat(point[keys.Value])
		pie.Total += v
		pie.Segments = append(pie.Segments, PieSegment{
			Label: labelOf(point[keys.Category]),
			Value: v,
			Color: ColorForSeries(i),
		})
	}
	if pie.Total != 0 {
		for i := range pie.Segments {
			pct := pie.Segments[i].Value / pie.Total * 100
			pie.Segments[i].Percentage = math.Round(pct*100) / 100
		}
	}
	return pie
}
