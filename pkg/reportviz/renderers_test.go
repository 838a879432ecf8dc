package reportviz

import (
	"reflect"
	"testing"
)

func TestInferSeriesKeys(t *testing.T) {
	tests := []struct {
		name  string
		first map[string]any
		want  SeriesKeys
	}{
		{
			name:  "label and value",
			first: map[string]any{"label": "A", "value": 1.0},
			want:  SeriesKeys{Category: "label", Value: "value", Series: []string{"value"}},
		},
		{
			name:  "period and count",
			first: map[string]any{"period": "2024-01", "count": 3.0, "label": "ignored"},
			want:  SeriesKeys{Category: "period", Value: "count", Series: []string{"count"}},
		},
		{
			name:  "multi series",
			first: map[string]any{"period": "Jan", "male": 3.0, "female": 5.0},
			want:  SeriesKeys{Category: "period", Value: "value", Series: []string{"female", "male"}},
		},
		{
			name:  "value first then extras",
			first: map[string]any{"name": "x", "value": 2.0, "target": 4.0, "chartId": 9.0},
			want:  SeriesKeys{Category: "name", Value: "value", Series: []string{"value", "target"}},
		},
		{
			name:  "no numeric fields",
			first: map[string]any{"name": "x"},
			want:  SeriesKeys{Category: "name", Value: "value", Series: []string{"value"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferSeriesKeys(tt.first); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InferSeriesKeys() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderSeries_MultiSeries(t *testing.T) {
	chart := renderSeries([]map[string]any{
		{"period": "Jan", "male": 3.0, "female": 5.0},
		{"period": "Feb", "male": 4.0},
	})

	if !reflect.DeepEqual(chart.Categories, []string{"Jan", "Feb"}) {
		t.Errorf("categories = %v", chart.Categories)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(chart.Series))
	}
	female, male := chart.Series[0], chart.Series[1]
	if female.Name != "female" || male.Name != "male" {
		t.Errorf("series names = %s, %s", female.Name, male.Name)
	}
	if female.Color != ColorForSeries(0) || male.Color != ColorForSeries(1) {
		t.Errorf("colors not assigned by position: %s, %s", female.Color, male.Color)
	}
	if !reflect.DeepEqual(female.Values, []float64{5, 0}) {
		t.Errorf("female values = %v, want missing point as 0", female.Values)
	}
	if !reflect.DeepEqual(male.Values, []float64{3, 4}) {
		t.Errorf("male values = %v", male.Values)
	}
}

func TestRenderSeries_SingleSeriesIsHumanized(t *testing.T) {
	chart := renderSeries([]map[string]any{{"label": "A", "count": 2.0}})
	if chart.Series[0].Name != "Count" {
		t.Errorf("name = %q, want Count", chart.Series[0].Name)
	}
}

func TestRenderPie(t *testing.T) {
	pie := renderPie([]map[string]any{
		{"label": "A", "value": 4.0},
		{"label": "B", "value": 6.0},
	})
	if pie.Total != 10 {
		t.Fatalf("total = %v", pie.Total)
	}
	if pie.Segments[0].Percentage != 40 || pie.Segments[1].Percentage != 60 {
		t.Errorf("percentages = %v, %v", pie.Segments[0].Percentage, pie.Segments[1].Percentage)
	}

	thirds := renderPie([]map[string]any{{"name": "a", "count": 1.0}, {"name": "b", "count": 2.0}})
	if thirds.Segments[0].Percentage != 33.33 {
		t.Errorf("percentage = %v, want 33.33", thirds.Segments[0].Percentage)
	}

	zero := renderPie([]map[string]any{{"label": "A", "value": 0.0}})
	if zero.Segments[0].Percentage != 0 {
		t.Errorf("zero total must not divide: %v", zero.Segments[0].Percentage)
	}
}

func TestRenderScatter(t *testing.T) {
	chart := renderScatter([]map[string]any{
		{"label": "Jan", "value": 3.0},
		{"label": "Feb", "value": "n/a"},
		{"label": "Mar", "value": 5.0},
	})
	if chart.XKey != "label" || chart.YKey != "value" {
		t.Errorf("keys = %s/%s", chart.XKey, chart.YKey)
	}
	if len(chart.Points) != 2 {
		t.Fatalf("expected 2 points, got %v", chart.Points)
	}
	if chart.Points[1].X != 2 || chart.Points[1].Label != "Mar" {
		t.Errorf("categorical x must use position: %+v", chart.Points[1])
	}

	numeric := renderScatter([]map[string]any{{"x": 1.5, "y": 2.0}})
	if numeric.Points[0].X != 1.5 || numeric.Points[0].Y != 2 {
		t.Errorf("numeric point = %+v", numeric.Points[0])
	}
}

func TestRenderHeatmap(t *testing.T) {
	tests := []struct {
		name   string
		points []map[string]any
		layout HeatmapLayout
		rows   []string
		cols   []string
	}{
		{
			name: "status transitions",
			points: []map[string]any{
				{"fromStatus": "new", "toStatus": "active", "value": 4.0},
				{"fromStatus": "active", "toStatus": "closed", "value": 2.0},
			},
			layout: HeatmapStatusTransition,
			rows:   []string{"new", "active"},
			cols:   []string{"active", "closed"},
		},
		{
			name: "temporal hours sorted numerically",
			points: []map[string]any{
				{"day": "Mon", "hour": 14.0, "count": 1.0},
				{"day": "Mon", "hour": 9.0, "count": 3.0},
				{"day": "Tue", "hour": 10.0, "count": 2.0},
			},
			layout: HeatmapTemporal,
			rows:   []string{"Mon", "Tue"},
			cols:   []string{"9", "10", "14"},
		},
		{
			name: "generic",
			points: []map[string]any{
				{"x": "a", "y": "r1", "value": 1.0},
				{"x": "b", "y": "r2", "value": 1.0},
			},
			layout: HeatmapGeneric,
			rows:   []string{"r1", "r2"},
			cols:   []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm := renderHeatmap(tt.points)
			if hm.Layout != tt.layout {
				t.Errorf("layout = %s, want %s", hm.Layout, tt.layout)
			}
			if !reflect.DeepEqual(hm.Rows, tt.rows) {
				t.Errorf("rows = %v, want %v", hm.Rows, tt.rows)
			}
			if !reflect.DeepEqual(hm.Cols, tt.cols) {
				t.Errorf("cols = %v, want %v", hm.Cols, tt.cols)
			}
		})
	}
}

func TestRenderHeatmap_Intensity(t *testing.T) {
	hm := renderHeatmap([]map[string]any{
		{"fromStatus": "a", "toStatus": "b", "value": 10.0},
		{"fromStatus": "b", "toStatus": "a", "value": 5.0},
		{"fromStatus": "b", "toStatus": "a", "value": 1.0},
	})

	if hm.Max != 10 {
		t.Errorf("max = %v", hm.Max)
	}
	hottest := hm.Cells[0][0]
	if hottest.Intensity != MaxHeatIntensity {
		t.Errorf("hottest intensity = %v, want capped at %v", hottest.Intensity, MaxHeatIntensity)
	}
	summed := hm.Cells[1][1]
	if summed.Value != 6 || summed.Intensity != 0.6 {
		t.Errorf("duplicate cells must sum: %+v", summed)
	}
	empty := hm.Cells[0][1]
	if empty.Value != 0 || empty.Fill != NeutralHeatFill {
		t.Errorf("empty cell = %+v", empty)
	}
	if hottest.Fill != "rgba(79, 70, 229, 0.85)" {
		t.Errorf("fill = %s", hottest.Fill)
	}
}

func TestExtractTable(t *testing.T) {
	tests := []struct {
		name    string
		r       Result
		ok      bool
		columns []string
	}{
		{name: "string headers", r: Result{"headers": []any{"a", "b"}, "rows": []any{}}, ok: true, columns: []string{"a", "b"}},
		{name: "field objects", r: Result{"columns": []any{map[string]any{"field": "x"}}, "data": []any{}}, ok: true, columns: []string{"x"}},
		{name: "inferred from rows", r: Result{"headers": []any{}, "rows": []any{map[string]any{"b": 1.0, "a": 2.0}}}, ok: true, columns: []string{"a", "b"}},
		{name: "bare rows", r: Result{"rows": []any{map[string]any{"k": 1.0}}}, ok: true, columns: []string{"k"}},
		{name: "nothing to show", r: Result{"headers": []any{}, "rows": []any{}}, ok: false},
		{name: "no shape", r: Result{"foo": 1.0}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, _, ok := extractTable(tt.r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			keys := make([]string, len(cols))
			for i, c := range cols {
				keys[i] = c.Key
			}
			if tt.ok && !reflect.DeepEqual(keys, tt.columns) {
				t.Errorf("columns = %v, want %v", keys, tt.columns)
			}
		})
	}
}

func TestBuildTable(t *testing.T) {
	f := NewFormatter("en")
	cols := []Column{{Key: "name"}, {Key: "contact.email"}, {Key: "active"}}
	rows := []any{
		map[string]any{"name": "Ann", "contact": map[string]any{"email": "ann@example.com"}, "active": true},
		map[string]any{"name": "Bob"},
		[]any{"Cy", "cy@example.com"},
		"skipped",
	}

	table := buildTable(f, "People", cols, rows)
	want := [][]string{
		{"Ann", "ann@example.com", "Yes"},
		{"Bob", EmptyCell, EmptyCell},
		{"Cy", "cy@example.com", EmptyCell},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %v, want %v", table.Rows, want)
	}
}

func TestSummaryVariants(t *testing.T) {
	f := NewFormatter("en")

	t.Run("patient lead metrics", func(t *testing.T) {
		s := renderSummary(f, Result{
			"type":     "summary",
			"inactive": 2.0,
			"total":    10.0,
			"active":   8.0,
			"byGender": map[string]any{"female": 6.0, "male": 4.0},
		}, SummaryPatient)
		if len(s.Metrics) != 3 {
			t.Fatalf("metrics = %+v", s.Metrics)
		}
		if s.Metrics[0].Label != "Total Patients" || s.Metrics[1].Key != "active" {
			t.Errorf("lead order wrong: %+v", s.Metrics)
		}
		if len(s.Sections) != 1 || s.Sections[0].Title != "By Gender" {
			t.Errorf("sections = %+v", s.Sections)
		}
	})

	t.Run("status transitions", func(t *testing.T) {
		s := renderSummary(f, Result{
			"total": 9.0,
			"statusTransitions": []any{
				map[string]any{"fromStatus": "new", "toStatus": "active", "count": 3.0},
				map[string]any{"from": "active", "to": "closed", "count": 4.0},
			},
		}, SummaryStatus)
		if s.Metrics[0].Label != "Total Transitions" || s.Metrics[0].Value != "7" {
			t.Errorf("first metric = %+v", s.Metrics[0])
		}
		if s.Metrics[1].Label != "Total" {
			t.Errorf("status total must not be labelled as patients: %+v", s.Metrics[1])
		}
		rows := s.Sections[0].Rows
		if len(rows) != 2 || rows[1][0] != "active" || rows[1][1] != "closed" {
			t.Errorf("transition rows = %v", rows)
		}
	})

	t.Run("comparative share", func(t *testing.T) {
		s := renderSummary(f, Result{
			"segments": []any{
				map[string]any{"label": "A", "value": 1.0},
				"junk",
				map[string]any{"label": "B", "value": 3.0},
			},
		}, SummaryComparative)
		if s.Metrics[0].Value != "2" {
			t.Errorf("segment count = %s", s.Metrics[0].Value)
		}
		table := s.Sections[0]
		want := [][]string{{"A", "1", "25%"}, {"B", "3", "75%"}}
		if !reflect.DeepEqual(table.Rows, want) {
			t.Errorf("rows = %v, want %v", table.Rows, want)
		}
	})

	t.Run("visit", func(t *testing.T) {
		s := renderSummary(f, Result{"totalVisits": 12.0, "averageVisitsPerPatient": 1.5}, SummaryVisit)
		if s.Metrics[0].Label != "Total Visits" || s.Metrics[1].Value != "1.5" {
			t.Errorf("metrics = %+v", s.Metrics)
		}
	})
}
