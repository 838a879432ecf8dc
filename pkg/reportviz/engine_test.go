package reportviz

import (
	"errors"
	"testing"
	"time"
)

func reportDoc(charts []any, data any) map[string]any {
	return map[string]any{
		"_id": map[string]any{"$oid": "65a1b2c3d4e5f60718293a4b"},
		"reportConfig": map[string]any{
			"name":   "Demographics",
			"type":   "patient",
			"charts": charts,
		},
		"data":        data,
		"generatedAt": map[string]any{"$date": "2024-01-01T00:00:00Z"},
	}
}

func TestEngine_RenderPie(t *testing.T) {
	doc := reportDoc(
		[]any{map[string]any{"type": "pie", "title": "Gender", "dataField": "gender"}},
		[]any{map[string]any{
			"chartId": "gender",
			"data": []any{
				map[string]any{"label": "A", "value": 4.0},
				map[string]any{"label": "B", "value": 6.0},
			},
		}},
	)

	report, err := NewEngine(nil).Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if report.Name != "Demographics" || report.Type != ReportTypePatient {
		t.Errorf("report header = %s/%s", report.Name, report.Type)
	}
	if !report.GeneratedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("generatedAt = %v", report.GeneratedAt)
	}
	if len(report.Charts) != 1 {
		t.Fatalf("charts = %d", len(report.Charts))
	}
	spec := report.Charts[0]
	if spec.Kind != KindPie || spec.Title != "Gender" {
		t.Fatalf("spec = %+v", spec)
	}
	if spec.Pie.Segments[0].Percentage != 40 || spec.Pie.Segments[1].Percentage != 60 {
		t.Errorf("segments = %+v", spec.Pie.Segments)
	}
}

func TestEngine_OneSpecPerChart(t *testing.T) {
	charts := []any{
		map[string]any{"type": "bar", "dataField": "a"},
		map[string]any{"type": "summary", "dataField": "b"},
		map[string]any{"type": "table", "dataField": "c"},
	}

	tests := []struct {
		name string
		data any
		kind Kind
	}{
		{name: "empty array", data: []any{}, kind: KindEmpty},
		{name: "missing data", data: nil, kind: KindEmpty},
		{name: "scalar data", data: 12.0, kind: KindEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := NewEngine(nil).Render(reportDoc(charts, tt.data))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if len(report.Charts) != len(charts) {
				t.Fatalf("got %d specs, want %d", len(report.Charts), len(charts))
			}
			for i, spec := range report.Charts {
				if spec.Kind != tt.kind {
					t.Errorf("chart %d kind = %s, want %s", i, spec.Kind, tt.kind)
				}
				if spec.Index != i {
					t.Errorf("chart %d index = %d", i, spec.Index)
				}
			}
		})
	}
}

func TestEngine_SingleObjectSummary(t *testing.T) {
	doc := reportDoc(
		[]any{map[string]any{"type": "summary", "title": "Overview"}},
		map[string]any{"type": "summary", "total": 120.0, "active": 100.0},
	)

	report, err := NewEngine(nil).Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	spec := report.Charts[0]
	if spec.Kind != KindSummary || spec.Summary.Variant != SummaryPatient {
		t.Fatalf("spec = %+v", spec)
	}
	if spec.Summary.Metrics[0].Value != "120" {
		t.Errorf("total = %s", spec.Summary.Metrics[0].Value)
	}
}

func TestEngine_ImplicitCharts(t *testing.T) {
	doc := reportDoc(nil, []any{
		map[string]any{"type": "bar", "title": "Visits", "data": []any{map[string]any{"label": "Jan", "value": 1.0}}},
		map[string]any{"type": "summary", "totalVisits": 3.0},
	})

	report, err := NewEngine(nil).Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(report.Charts) != 2 {
		t.Fatalf("charts = %d", len(report.Charts))
	}
	if report.Charts[0].Kind != KindSeries || report.Charts[0].Title != "Visits" {
		t.Errorf("chart 0 = %+v", report.Charts[0])
	}
	if report.Charts[1].Kind != KindSummary {
		t.Errorf("chart 1 kind = %s", report.Charts[1].Kind)
	}
}

func TestEngine_RendererFailureIsIsolated(t *testing.T) {
	doc := reportDoc(
		[]any{
			map[string]any{"type": "bar", "title": "Fine"},
			map[string]any{"type": "summary", "title": "Broken"},
		},
		[]any{
			map[string]any{"data": []any{map[string]any{"label": "A", "value": 1.0}}},
			map[string]any{"total": 5.0},
		},
	)

	e := NewEngine(nil)
	// A dispatcher without a formatter panics on the first number it formats.
	e.dispatcher = &Dispatcher{}

	report, err := e.Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if report.Charts[0].Kind != KindSeries {
		t.Errorf("healthy chart kind = %s", report.Charts[0].Kind)
	}
	broken := report.Charts[1]
	if broken.Kind != KindError || broken.Title != "Broken" {
		t.Errorf("broken chart = %+v", broken)
	}
	if broken.Message != "Chart 2 could not be rendered" {
		t.Errorf("message = %q", broken.Message)
	}
}

func TestEngine_NotAnObject(t *testing.T) {
	for _, doc := range []any{nil, "report", []any{map[string]any{}}, 3.0} {
		if _, err := NewEngine(nil).Render(doc); !errors.Is(err, ErrPayloadNotObject) {
			t.Errorf("Render(%v) error = %v, want ErrPayloadNotObject", doc, err)
		}
	}
}

func TestEngine_WithStrategies(t *testing.T) {
	doc := reportDoc(
		[]any{map[string]any{"type": "summary", "dataField": "x"}},
		[]any{map[string]any{"total": 1.0}},
	)

	report, err := NewEngine(nil, WithStrategies(ExactMatch)).Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if report.Charts[0].Kind != KindEmpty {
		t.Errorf("without positional fallback the chart must be unresolved, got %s", report.Charts[0].Kind)
	}
}
