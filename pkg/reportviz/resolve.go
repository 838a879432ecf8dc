package reportviz

// Strategy tries to find the dataset for the chart at index i.
type Strategy func(cfg ChartConfig, p *Payload, i int) (Result, bool)

// DefaultStrategies is the lookup order used by Resolve. The first strategy that
// succeeds wins.
func DefaultStrategies() []Strategy {
	return []Strategy{
		ExactMatch,
		Positional,
		SecondaryData,
		ChartsContainer,
		WholeObject,
	}
}

// Resolve matches every declared chart to a dataset using the default strategies.
// The returned slice has one entry per chart, nil where nothing matched.
func Resolve(charts []ChartConfig, p *Payload) []Result {
	return ResolveWith(DefaultStrategies(), charts, p)
}

func ResolveWith(strategies []Strategy, charts []ChartConfig, p *Payload) []Result {
	out := make([]Result, len(charts))
	if p == nil {
		return out
	}
	for i, cfg := range charts {
		for _, strategy := range strategies {
			if r, ok := strategy(cfg, p, i); ok {
				out[i] = r
				break
			}
		}
	}
	return out
}

// ExactMatch picks the top-level data entry whose chartId equals the chart's dataField.
func ExactMatch(cfg ChartConfig, p *Payload, _ int) (Result, bool) {
	if cfg.DataField == "" {
		return nil, false
	}
	items, ok := asSlice(p.Data)
	if !ok {
		return nil, false
	}
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		if id, ok := m["chartId"].(string); ok && id == cfg.DataField {
			return Result(m), true
		}
	}
	return nil, false
}

// Positional picks data[i], falling back to data[0].
func Positional(_ ChartConfig, p *Payload, i int) (Result, bool) {
	items, ok := asSlice(p.Data)
	if !ok {
		return nil, false
	}
	return indexOrFirst(items, i)
}

// SecondaryData looks under data.data when data is an object. An object that
// carries its own type tag is a chart result, not a container, and is skipped.
func SecondaryData(_ ChartConfig, p *Payload, i int) (Result, bool) {
	m, ok := asMap(p.Data)
	if !ok {
		return nil, false
	}
	if _, tagged := m["type"]; tagged {
		return nil, false
	}
	items, ok := asSlice(m["data"])
	if !ok {
		return nil, false
	}
	return indexOrFirst(items, i)
}

// ChartsContainer looks at charts[i], first under data.charts then on the payload.
func ChartsContainer(_ ChartConfig, p *Payload, i int) (Result, bool) {
	if m, ok := asMap(p.Data); ok {
		if items, ok := asSlice(m["charts"]); ok {
			if r, ok := objectAt(items, i); ok {
				return r, true
			}
		}
	}
	return objectAt(p.Charts, i)
}

// WholeObject uses data itself when it is a single object that is not a container.
func WholeObject(_ ChartConfig, p *Payload, _ int) (Result, bool) {
	m, ok := asMap(p.Data)
	if !ok || len(m) == 0 {
		return nil, false
	}
	if _, isContainer := asSlice(m["data"]); isContainer {
		if _, hasType := m["type"]; !hasType {
			return nil, false
		}
	}
	if _, isContainer := asSlice(m["charts"]); isContainer {
		return nil, false
	}
	return Result(m), true
}

func indexOrFirst(items []any, i int) (Result, bool) {
	if r, ok := objectAt(items, i); ok {
		return r, true
	}
	return objectAt(items, 0)
}

func objectAt(items []any, i int) (Result, bool) {
	if i < 0 || i >= len(items) {
		return nil, false
	}
	m, ok := asMap(items[i])
	if !ok {
		return nil, false
	}
	return Result(m), true
}

// implicitCharts declares one chart per data entry for payloads whose report
// config lists no charts.
func implicitCharts(p *Payload) []ChartConfig {
	var items []any
	if s, ok := asSlice(p.Data); ok {
		items = s
	} else if m, ok := asMap(p.Data); ok {
		if s, ok := asSlice(m["charts"]); ok {
			items = s
		} else {
			items = []any{m}
		}
	}
	charts := make([]ChartConfig, 0, len(items))
	for i, item := range items {
		cc := ChartConfig{Order: i}
		if m, ok := asMap(item); ok {
			cc.Title = stringField(m, "title")
			cc.DataField = stringField(m, "chartId")
		}
		charts = append(charts, cc)
	}
	return charts
}
