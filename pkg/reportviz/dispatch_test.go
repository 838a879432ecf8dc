package reportviz

import (
	"strings"
	"testing"
)

func points(pts ...map[string]any) []any {
	out := make([]any, len(pts))
	for i, p := range pts {
		out[i] = p
	}
	return out
}

func TestEffectiveType(t *testing.T) {
	tests := []struct {
		name     string
		r        Result
		declared ChartType
		want     ChartType
	}{
		{name: "result tag wins", r: Result{"type": "pie"}, declared: ChartTypeBar, want: ChartTypePie},
		{name: "declared", r: Result{}, declared: ChartTypeLine, want: ChartTypeLine},
		{name: "default summary", r: Result{}, want: ChartTypeSummary},
		{name: "empty tag ignored", r: Result{"type": ""}, declared: ChartTypeArea, want: ChartTypeArea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveType(tt.r, tt.declared); got != tt.want {
				t.Errorf("EffectiveType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRender_EmptyStates(t *testing.T) {
	d := NewDispatcher(nil)

	tests := []struct {
		name     string
		r        Result
		declared ChartType
		contains string
	}{
		{name: "unresolved", r: nil, declared: ChartTypeBar, contains: "No data available"},
		{name: "bar missing data", r: Result{}, declared: ChartTypeBar, contains: "bar"},
		{name: "line empty data", r: Result{"data": []any{}}, declared: ChartTypeLine, contains: "line"},
		{name: "pie non-array data", r: Result{"data": map[string]any{"a": 1.0}}, declared: ChartTypePie, contains: "pie"},
		{name: "heatmap scalar points", r: Result{"data": []any{1.0, 2.0}}, declared: ChartTypeHeatmap, contains: "heatmap"},
		{name: "table without rows", r: Result{"headers": []any{}}, declared: ChartTypeTable, contains: "table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := d.Render(tt.r, tt.declared, 0, "Chart")
			if spec.Kind != KindEmpty {
				t.Fatalf("kind = %s, want empty", spec.Kind)
			}
			if !strings.Contains(spec.Message, tt.contains) {
				t.Errorf("message %q does not mention %q", spec.Message, tt.contains)
			}
			if spec.Title != "Chart" {
				t.Errorf("title = %q", spec.Title)
			}
		})
	}
}

func TestRender_SummaryClassification(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want SummaryVariant
	}{
		{name: "status before total", r: Result{"statusTransitions": []any{}, "total": 3.0}, want: SummaryStatus},
		{name: "patient", r: Result{"total": 10.0, "totalVisits": 4.0}, want: SummaryPatient},
		{name: "visit", r: Result{"totalVisits": 4.0}, want: SummaryVisit},
		{name: "comparative", r: Result{"segments": []any{}}, want: SummaryComparative},
		{name: "generic", r: Result{"foo": "bar"}, want: SummaryGeneric},
	}
	d := NewDispatcher(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySummary(tt.r); got != tt.want {
				t.Errorf("ClassifySummary() = %s, want %s", got, tt.want)
			}
			spec := d.Render(tt.r, ChartTypeSummary, 0, "")
			if spec.Kind != KindSummary || spec.Summary == nil {
				t.Fatalf("kind = %s, want summary", spec.Kind)
			}
			if spec.Summary.Variant != tt.want {
				t.Errorf("variant = %s, want %s", spec.Summary.Variant, tt.want)
			}
		})
	}
}

func TestRender_GenericSummaryExcludesTypeAndTitle(t *testing.T) {
	spec := NewDispatcher(nil).Render(Result{"type": "summary", "title": "T", "alpha": 1.0, "beta": true}, "", 0, "")
	rows := spec.Summary.Sections[0].Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", rows)
	}
	if rows[0][0] != "Alpha" || rows[1][0] != "Beta" || rows[1][1] != "Yes" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestRender_UnknownTypeFallsBackToRawTable(t *testing.T) {
	r := Result{
		"type":   "sankey",
		"total":  12.0,
		"label":  "Flows",
		"nested": map[string]any{"a": 1.0},
		"list":   []any{1.0},
	}
	spec := NewDispatcher(nil).Render(r, ChartTypeBar, 2, "Flows")
	if spec.Kind != KindTable || spec.Renderer != "raw" {
		t.Fatalf("kind = %s renderer = %s, want raw table", spec.Kind, spec.Renderer)
	}
	if len(spec.Table.Rows) != 3 {
		t.Errorf("expected 3 scalar rows (label, total, type), got %v", spec.Table.Rows)
	}
	if spec.Index != 2 {
		t.Errorf("index = %d", spec.Index)
	}
}

func TestRender_TableShapes(t *testing.T) {
	tests := []struct {
		name string
		r    Result
	}{
		{
			name: "headers and rows",
			r: Result{
				"headers": []any{map[string]any{"key": "name", "label": "Name"}, map[string]any{"key": "personalInfo.age", "label": "Age"}},
				"rows":    points(map[string]any{"name": "Ann", "personalInfo": map[string]any{"age": 31.0}}),
			},
		},
		{
			name: "columns and data",
			r: Result{
				"columns": []any{"name", "personalInfo.age"},
				"data":    points(map[string]any{"name": "Ann", "personalInfo": map[string]any{"age": 31.0}}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewDispatcher(nil).Render(tt.r, ChartTypeTable, 0, "Patients")
			if spec.Kind != KindTable {
				t.Fatalf("kind = %s, message = %s", spec.Kind, spec.Message)
			}
			if len(spec.Table.Columns) != 2 {
				t.Fatalf("columns = %v", spec.Table.Columns)
			}
			if got := spec.Table.Rows[0]; got[0] != "Ann" || got[1] != "31" {
				t.Errorf("row = %v, want [Ann 31]", got)
			}
		})
	}
}

func TestRender_SeriesDispatch(t *testing.T) {
	r := Result{"data": points(
		map[string]any{"period": "Jan", "male": 3.0, "female": 5.0},
		map[string]any{"period": "Feb", "male": 4.0, "female": 2.0},
	)}

	for _, ct := range []ChartType{ChartTypeBar, ChartTypeLine, ChartTypeArea} {
		spec := NewDispatcher(nil).Render(r, ct, 0, "")
		if spec.Kind != KindSeries || spec.Series == nil {
			t.Fatalf("%s: kind = %s", ct, spec.Kind)
		}
		if spec.Renderer != string(ct) {
			t.Errorf("renderer = %s, want %s", spec.Renderer, ct)
		}
	}
}
