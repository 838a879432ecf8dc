package reportviz

import (
	"math"
	"sort"
	"strconv"
)

type heatmapAxes struct {
	layout   HeatmapLayout
	rowKey   string
	colKey   string
	valueKey string
}

// heatmapLayouts is checked in order against the first data point.
var heatmapLayouts = []heatmapAxes{
	{layout: HeatmapStatusTransition, rowKey: "fromStatus", colKey: "toStatus", valueKey: "value"},
	{layout: HeatmapTemporal, rowKey: "day", colKey: "hour", valueKey: "value"},
}

var genericHeatmap = heatmapAxes{layout: HeatmapGeneric, rowKey: "y", colKey: "x", valueKey: "value"}

func detectHeatmapAxes(first map[string]any) heatmapAxes {
	for _, axes := range heatmapLayouts {
		_, hasRow := first[axes.rowKey]
		_, hasCol := first[axes.colKey]
		if hasRow && hasCol {
			return axes
		}
	}
	return genericHeatmap
}

// renderHeatmap lays the points out as a matrix whose rows and columns are the
// distinct row/column values in order of first appearance.
func renderHeatmap(points []map[string]any) *Heatmap {
	axes := detectHeatmapAxes(points[0])
	valueKey := firstPresent(points[0], []string{axes.valueKey, "count"}, axes.valueKey)

	rows, rowIdx := axisValues(points, axes.rowKey)
	cols, colIdx := axisValues(points, axes.colKey)
	if axes.layout == HeatmapTemporal {
		cols, colIdx = sortNumericAxis(cols)
	}

	values := make([][]float64, len(rows))
	for r := range values {
		values[r] = make([]float64, len(cols))
	}
	maxValue := 0.0
	for _, p := range points {
		r, ok := rowIdx[labelOf(p[axes.rowKey])]
		if !ok {
			continue
		}
		c, ok := colIdx[labelOf(p[axes.colKey])]
		if !ok {
			continue
		}
		v, _ := toFloat(p[valueKey])
		values[r][c] += v
		maxValue = math.Max(maxValue, values[r][c])
	}

	hm := &Heatmap{
		Layout: axes.layout,
		Rows:   rows,
		Cols:   cols,
		Cells:  make([][]HeatmapCell, len(rows)),
		Max:    maxValue,
	}
	for r := range rows {
		hm.Cells[r] = make([]HeatmapCell, len(cols))
		for c := range cols {
			v := values[r][c]
			intensity := 0.0
			if maxValue > 0 && v > 0 {
				intensity = math.Min(v/maxValue, MaxHeatIntensity)
			}
			hm.Cells[r][c] = HeatmapCell{Value: v, Intensity: intensity, Fill: heatFill(intensity)}
		}
	}
	return hm
}

func axisValues(points []map[string]any, key string) ([]string, map[string]int) {
	var values []string
	index := make(map[string]int)
	for _, p := range points {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		label := labelOf(v)
		if _, seen := index[label]; seen {
			continue
		}
		index[label] = len(values)
		values = append(values, label)
	}
	return values, index
}

// sortNumericAxis orders hour columns numerically when every label is a number.
func sortNumericAxis(values []string) ([]string, map[string]int) {
	nums := make(map[string]float64, len(values))
	for _, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			index := make(map[string]int, len(values))
			for i, s := range values {
				index[s] = i
			}
			return values, index
		}
		nums[v] = n
	}
	sorted := append([]string(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool { return nums[sorted[i]] < nums[sorted[j]] })
	index := make(map[string]int, len(sorted))
	for i, s := range sorted {
		index[s] = i
	}
	return sorted, index
}
