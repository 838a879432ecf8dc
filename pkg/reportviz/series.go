package reportviz

var (
	categoryKeys = []string{"period", "label", "name"}
	valueKeys    = []string{"count", "value"}
)

const (
	defaultCategoryKey = "label"
	defaultValueKey    = "value"
)

// nonSeriesKeys never become extra series even when numeric.
var nonSeriesKeys = map[string]struct{}{
	"id": {}, "_id": {}, "chartId": {}, "order": {}, "index": {},
}

// SeriesKeys describes how a list of data points maps onto a chart.
type SeriesKeys struct {
	Category string
	Value    string
	Series   []string
}

// InferSeriesKeys inspects the first data point: the category and value keys are
// the first present of their candidate names, and every other numeric field adds
// a series.
func InferSeriesKeys(first map[string]any) SeriesKeys {
	keys := SeriesKeys{
		Category: firstPresent(first, categoryKeys, defaultCategoryKey),
		Value:    firstPresent(first, valueKeys, defaultValueKey),
	}
	if _, ok := first[keys.Value]; ok {
		keys.Series = append(keys.Series, keys.Value)
	}
	for _, k := range sortedKeys(first) {
		if k == keys.Category || k == keys.Value {
			continue
		}
		if _, skip := nonSeriesKeys[k]; skip {
			continue
		}
		if _, numeric := toFloat(first[k]); numeric {
			keys.Series = append(keys.Series, k)
		}
	}
	if len(keys.Series) == 0 {
		keys.Series = []string{keys.Value}
	}
	return keys
}

// renderSeries builds bar, line and area charts.
func renderSeries(points []map[string]any) *SeriesChart {
	keys := InferSeriesKeys(points[0])
	chart := &SeriesChart{
		CategoryKey: keys.Category,
		ValueKey:    keys.Value,
		Categories:  make([]string, len(points)),
		Series:      make([]Series, len(keys.Series)),
	}
	for i, key := range keys.Series {
		chart.Series[i] = Series{
			Name:   seriesName(key, keys.Value, len(keys.Series)),
			Key:    key,
			Color:  ColorForSeries(i),
			Values: make([]float64, len(points)),
		}
	}
	for p, point := range points {
		chart.Categories[p] = labelOf(point[keys.Category])
		for i, key := range keys.Series {
			v, _ := toFloat(point[key])
			chart.Series[i].Values[p] = v
		}
	}
	return chart
}

// seriesName keeps field names for multi-series charts and humanizes the lone
// value series.
func seriesName(key, valueKey string, count int) string {
	if count == 1 && key == valueKey {
		return Humanize(key)
	}
	return key
}
