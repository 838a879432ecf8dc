package reportviz

import "sort"

// summaryRule binds a distinguishing field to a summary variant.
type summaryRule struct {
	field   string
	variant SummaryVariant
}

// summaryRules is the classification priority for results of type "summary".
// A result is the first variant whose field it contains, so a status summary
// that also carries a total is still a status summary.
var summaryRules = []summaryRule{
	{field: "statusTransitions", variant: SummaryStatus},
	{field: "total", variant: SummaryPatient},
	{field: "totalVisits", variant: SummaryVisit},
	{field: "segments", variant: SummaryComparative},
}

// ClassifySummary returns the summary variant of r.
func ClassifySummary(r Result) SummaryVariant {
	for _, rule := range summaryRules {
		if v, ok := r[rule.field]; ok && v != nil {
			return rule.variant
		}
	}
	return SummaryGeneric
}

// summaryMeta are bookkeeping fields never shown as metrics.
var summaryMeta = map[string]struct{}{
	"type": {}, "title": {}, "chartId": {}, "id": {}, "_id": {},
}

var (
	patientLead = []string{"total", "active", "inactive", "newThisPeriod"}
	visitLead   = []string{"totalVisits", "uniquePatients", "averageVisitsPerPatient"}

	patientLabels = map[string]string{"total": "Total Patients"}
	visitLabels   = map[string]string{
		"totalVisits":             "Total Visits",
		"averageVisitsPerPatient": "Avg. Visits per Patient",
	}
)

func renderSummary(f *Formatter, r Result, variant SummaryVariant) *Summary {
	switch variant {
	case SummaryStatus:
		return statusSummary(f, r)
	case SummaryPatient:
		return fieldSummary(f, r, SummaryPatient, patientLead, patientLabels, nil)
	case SummaryVisit:
		return fieldSummary(f, r, SummaryVisit, visitLead, visitLabels, nil)
	case SummaryComparative:
		return comparativeSummary(f, r)
	default:
		return genericSummary(f, r)
	}
}

// fieldSummary turns scalar fields into metrics (lead keys first) and nested
// objects or lists into breakdown sections.
func fieldSummary(f *Formatter, r Result, variant SummaryVariant, lead []string, labels map[string]string, skip map[string]struct{}) *Summary {
	s := &Summary{Variant: variant}
	used := make(map[string]struct{})
	for k := range skip {
		used[k] = struct{}{}
	}

	addMetric := func(k string) {
		if _, done := used[k]; done {
			return
		}
		v, ok := r[k]
		if !ok || !isScalar(v) {
			return
		}
		used[k] = struct{}{}
		s.Metrics = append(s.Metrics, Metric{Key: k, Label: metricLabel(labels, k), Value: f.Format(v), Raw: v})
	}
	for _, k := range lead {
		addMetric(k)
	}

	for _, k := range sortedKeys(r) {
		if _, meta := summaryMeta[k]; meta {
			continue
		}
		if _, done := used[k]; done {
			continue
		}
		if isScalar(r[k]) {
			addMetric(k)
			continue
		}
		if section := breakdownSection(f, k, r[k]); section != nil {
			s.Sections = append(s.Sections, *section)
		}
	}
	return s
}

// breakdownSection renders a nested object as a key/value table and a list of
// objects as a table with inferred columns.
func breakdownSection(f *Formatter, key string, v any) *Table {
	title := Humanize(key)
	if m, ok := asMap(v); ok {
		t := &Table{
			Title:   title,
			Columns: []Column{{Key: "key", Label: title}, {Key: "value", Label: "Value"}},
		}
		for _, k := range sortedKeys(m) {
			t.Rows = append(t.Rows, []string{k, f.Format(m[k])})
		}
		return t
	}
	if items, ok := asSlice(v); ok && len(items) > 0 {
		if cols := inferColumns(items); len(cols) > 0 {
			return buildTable(f, title, cols, items)
		}
		return &Table{
			Title:   title,
			Columns: []Column{{Key: "value", Label: title}},
			Rows:    [][]string{{f.Format(items)}},
		}
	}
	return nil
}

func statusSummary(f *Formatter, r Result) *Summary {
	s := fieldSummary(f, r, SummaryStatus, []string{"total"}, nil, map[string]struct{}{"statusTransitions": {}})

	transitions := &Table{
		Title: "Status Transitions",
		Columns: []Column{
			{Key: "fromStatus", Label: "From"},
			{Key: "toStatus", Label: "To"},
			{Key: "count", Label: "Count"},
		},
	}
	var total float64
	raw := r["statusTransitions"]
	if items, ok := asSlice(raw); ok {
		for _, t := range asObjects(items) {
			n, _ := toFloat(t[firstPresent(t, valueKeys, "count")])
			total += n
			transitions.Rows = append(transitions.Rows, []string{
				cellValue(f, t, firstPresent(t, []string{"fromStatus", "from"}, "fromStatus")),
				cellValue(f, t, firstPresent(t, []string{"toStatus", "to"}, "toStatus")),
				f.Number(n),
			})
		}
	} else if m, ok := asMap(raw); ok {
		transitions.Columns = []Column{{Key: "transition", Label: "Transition"}, {Key: "count", Label: "Count"}}
		for _, k := range sortedKeys(m) {
			n, _ := toFloat(m[k])
			total += n
			transitions.Rows = append(transitions.Rows, []string{k, f.Number(n)})
		}
	}

	s.Metrics = append([]Metric{{
		Key:   "statusTransitions",
		Label: "Total Transitions",
		Value: f.Number(total),
		Raw:   total,
	}}, s.Metrics...)
	s.Sections = append([]Table{*transitions}, s.Sections...)
	return s
}

func comparativeSummary(f *Formatter, r Result) *Summary {
	s := fieldSummary(f, r, SummaryComparative, nil, nil, map[string]struct{}{"segments": {}})

	items, _ := asSlice(r["segments"])
	segments := asObjects(items)
	s.Metrics = append([]Metric{{
		Key:   "segments",
		Label: "Segments",
		Value: f.Number(float64(len(segments))),
		Raw:   len(segments),
	}}, s.Metrics...)
	if len(segments) == 0 {
		return s
	}

	keys := InferSeriesKeys(segments[0])
	var total float64
	for _, seg := range segments {
		n, _ := toFloat(seg[keys.Value])
		total += n
	}

	cols := []Column{{Key: keys.Category, Label: "Segment"}}
	for _, k := range keys.Series {
		cols = append(cols, Column{Key: k, Label: Humanize(k)})
	}
	rows := make([]any, len(segments))
	for i, seg := range segments {
		rows[i] = seg
	}
	table := buildTable(f, "Segments", cols, rows)
	if total > 0 {
		table.Columns = append(table.Columns, Column{Key: "share", Label: "Share"})
		for i, seg := range segments {
			n, _ := toFloat(seg[keys.Value])
			table.Rows[i] = append(table.Rows[i], f.Percent(n/total*100))
		}
	}
	s.Sections = append([]Table{*table}, s.Sections...)
	return s
}

// genericSummary lists every field of the result except its type and title.
func genericSummary(f *Formatter, r Result) *Summary {
	keys := make([]string, 0, len(r))
	for k := range r {
		if k == "type" || k == "title" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	table := keyValueTable(f, "", r, keys)
	return &Summary{Variant: SummaryGeneric, Sections: []Table{*table}}
}

func metricLabel(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return Humanize(key)
}

func isScalar(v any) bool {
	if _, ok := asMap(v); ok {
		return false
	}
	if _, ok := asSlice(v); ok {
		return false
	}
	return true
}
