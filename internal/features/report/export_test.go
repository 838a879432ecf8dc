package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"patient-reports/pkg/reportviz"

	"github.com/xuri/excelize/v2"
)

func sampleReport() *reportviz.RenderedReport {
	return &reportviz.RenderedReport{
		Name:        "Visit Trends",
		Type:        reportviz.ReportTypeVisit,
		GeneratedAt: time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC),
		Charts: []reportviz.RenderSpec{
			{
				Kind: reportviz.KindSeries, Index: 0, Title: "Visits", ChartType: reportviz.ChartTypeLine,
				Series: &reportviz.SeriesChart{
					CategoryKey: "month", ValueKey: "value",
					Categories: []string{"Jan", "Feb"},
					Series: []reportviz.Series{
						{Name: "Female", Key: "female", Color: "#4F46E5", Values: []float64{3, 5}},
						{Name: "Male", Key: "male", Color: "#10B981", Values: []float64{2, 4}},
					},
				},
			},
			{
				Kind: reportviz.KindPie, Index: 1, Title: "Visits",
				Pie: &reportviz.PieChart{Total: 10, Segments: []reportviz.PieSegment{
					{Label: "A", Value: 4, Percentage: 40, Color: "#4F46E5"},
					{Label: "B", Value: 6, Percentage: 60, Color: "#10B981"},
				}},
			},
			{
				Kind: reportviz.KindSummary, Index: 2, Title: "Status: totals?",
				Summary: &reportviz.Summary{
					Variant: reportviz.SummaryStatus,
					Metrics: []reportviz.Metric{{Key: "active", Label: "Active", Value: "12"}},
					Sections: []reportviz.Table{{
						Title:   "By Status",
						Columns: []reportviz.Column{{Key: "status", Label: "Status"}, {Key: "count", Label: "Count"}},
						Rows:    [][]string{{"active", "12"}},
					}},
				},
			},
			{Kind: reportviz.KindEmpty, Index: 3, Message: "No data available"},
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	data, err := BuildWorkbook(sampleReport())
	if err != nil {
		t.Fatalf("BuildWorkbook() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	want := []string{"Overview", "Visits", "Visits (2)", "Status totals", "Chart 4"}
	got := f.GetSheetList()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("sheets = %v, want %v", got, want)
	}

	cells := []struct {
		sheet, cell, want string
	}{
		{"Overview", "B2", "Visit Trends"},
		{"Overview", "B5", "2024-02-01 08:30:00"},
		{"Overview", "B6", "4"},
		{"Visits", "A1", "Month"},
		{"Visits", "C1", "Male"},
		{"Visits", "B3", "5"},
		{"Visits (2)", "C3", "60"},
		{"Status totals", "A2", "Active"},
		{"Status totals", "A4", "By Status"},
		{"Status totals", "A5", "Status"},
		{"Status totals", "B6", "12"},
		{"Chart 4", "A1", "No data available"},
	}
	for _, c := range cells {
		v, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Errorf("%s!%s: %v", c.sheet, c.cell, err)
			continue
		}
		if v != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, v, c.want)
		}
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]struct{}{overviewSheet: {}}
	long := strings.Repeat("x", 40)

	tests := []struct {
		title string
		want  string
	}{
		{title: "Overview", want: "Overview (2)"},
		{title: "a/b [c]", want: "a-b c"},
		{title: long, want: long[:31]},
		{title: long, want: long[:27] + " (2)"},
		{title: "  ", want: "Chart 1"},
	}
	for _, tt := range tests {
		got := sheetName(reportviz.RenderSpec{Title: tt.title}, used)
		if got != tt.want {
			t.Errorf("sheetName(%q) = %q, want %q", tt.title, got, tt.want)
		}
		if len([]rune(got)) > maxSheetName {
			t.Errorf("%q exceeds %d characters", got, maxSheetName)
		}
	}
}
