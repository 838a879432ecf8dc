package report

import (
	"fmt"
	"strings"

	"patient-reports/pkg/reportviz"

	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	maxSheetName  = 31
)

var invalidSheetChars = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "-", "\\", "-", "'", "",
)

// BuildWorkbook writes a rendered report as XLSX: an overview sheet, then one
// sheet per chart laid out the way the chart presents its data. Series and pie
// sheets also carry a native chart.
func BuildWorkbook(rendered *reportviz.RenderedReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, headerStyle: headerStyle}
	w.sheet = overviewSheet
	w.header(1, "Field", "Value")
	w.row(2, "Name", rendered.Name)
	w.row(3, "Description", rendered.Description)
	w.row(4, "Type", string(rendered.Type))
	if !rendered.GeneratedAt.IsZero() {
		w.row(5, "Generated At", rendered.GeneratedAt.UTC().Format("2006-01-02 15:04:05"))
	} else {
		w.row(5, "Generated At", reportviz.EmptyCell)
	}
	w.row(6, "Charts", len(rendered.Charts))
	w.widths(2, 24)

	used := map[string]struct{}{overviewSheet: {}}
	for _, spec := range rendered.Charts {
		name := sheetName(spec, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
		w.sheet = name
		if err := w.chart(spec); err != nil {
			return nil, fmt.Errorf("export chart %d: %w", spec.Index+1, err)
		}
	}
	f.SetActiveSheet(0)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// sheetName derives a unique, Excel-legal sheet name from the chart title.
func sheetName(spec reportviz.RenderSpec, used map[string]struct{}) string {
	base := strings.TrimSpace(invalidSheetChars.Replace(spec.Title))
	if base == "" {
		base = fmt.Sprintf("Chart %d", spec.Index+1)
	}
	name := truncate(base, maxSheetName)
	for n := 2; ; n++ {
		if _, taken := used[name]; !taken {
			break
		}
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[name] = struct{}{}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

type sheetWriter struct {
	f           *excelize.File
	sheet       string
	headerStyle int
}

func (w *sheetWriter) cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func (w *sheetWriter) row(row int, values ...any) {
	for i, v := range values {
		w.f.SetCellValue(w.sheet, w.cell(i+1, row), v)
	}
}

func (w *sheetWriter) header(row int, values ...string) {
	for i, v := range values {
		cell := w.cell(i+1, row)
		w.f.SetCellValue(w.sheet, cell, v)
		w.f.SetCellStyle(w.sheet, cell, cell, w.headerStyle)
	}
}

func (w *sheetWriter) widths(cols int, width float64) {
	for i := 1; i <= cols; i++ {
		col, _ := excelize.ColumnNumberToName(i)
		w.f.SetColWidth(w.sheet, col, col, width)
	}
}

// ref is an absolute range on the current sheet, e.g. 'Visits'!$B$2:$B$9.
func (w *sheetWriter) ref(col, fromRow, toRow int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", w.sheet, name, fromRow, name, toRow)
}

func (w *sheetWriter) chart(spec reportviz.RenderSpec) error {
	switch spec.Kind {
	case reportviz.KindSeries:
		return w.series(spec)
	case reportviz.KindPie:
		return w.pie(spec)
	case reportviz.KindScatter:
		w.header(1, spec.Scatter.XKey, spec.Scatter.YKey, "Label")
		for i, p := range spec.Scatter.Points {
			w.row(i+2, p.X, p.Y, p.Label)
		}
		w.widths(3, 15)
	case reportviz.KindHeatmap:
		hm := spec.Heatmap
		w.header(1, append([]string{""}, hm.Cols...)...)
		for r, label := range hm.Rows {
			values := []any{label}
			for _, c := range hm.Cells[r] {
				values = append(values, c.Value)
			}
			w.row(r+2, values...)
		}
		w.widths(len(hm.Cols)+1, 12)
	case reportviz.KindTable:
		w.table(1, spec.Table)
	case reportviz.KindSummary:
		w.summary(spec.Summary)
	default:
		w.row(1, spec.Message)
		w.widths(1, 48)
	}
	return nil
}

func (w *sheetWriter) series(spec reportviz.RenderSpec) error {
	chart := spec.Series
	headers := []string{reportviz.Humanize(chart.CategoryKey)}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	w.header(1, headers...)
	for p, category := range chart.Categories {
		values := []any{category}
		for _, s := range chart.Series {
			values = append(values, s.Values[p])
		}
		w.row(p+2, values...)
	}
	w.widths(len(headers), 15)

	last := len(chart.Categories) + 1
	series := make([]excelize.ChartSeries, len(chart.Series))
	for i := range chart.Series {
		series[i] = excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", w.sheet, mustColumn(i+2)),
			Categories: w.ref(1, 2, last),
			Values:     w.ref(i+2, 2, last),
		}
	}
	chartType := excelize.Col
	switch spec.ChartType {
	case reportviz.ChartTypeLine:
		chartType = excelize.Line
	case reportviz.ChartTypeArea:
		chartType = excelize.Area
	}
	return w.f.AddChart(w.sheet, w.cell(len(headers)+2, 1), &excelize.Chart{
		Type:   chartType,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: spec.Title}},
	})
}

func (w *sheetWriter) pie(spec reportviz.RenderSpec) error {
	pie := spec.Pie
	w.header(1, "Label", "Value", "Percentage")
	for i, seg := range pie.Segments {
		w.row(i+2, seg.Label, seg.Value, seg.Percentage)
	}
	w.widths(3, 15)

	last := len(pie.Segments) + 1
	return w.f.AddChart(w.sheet, "E1", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", w.sheet),
			Categories: w.ref(1, 2, last),
			Values:     w.ref(2, 2, last),
		}},
		Title: []excelize.RichTextRun{{Text: spec.Title}},
	})
}

// table writes t starting at row and returns the next free row.
func (w *sheetWriter) table(row int, t *reportviz.Table) int {
	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label
	}
	w.header(row, labels...)
	for _, cells := range t.Rows {
		row++
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		w.row(row, values...)
	}
	w.widths(len(labels), 20)
	return row + 1
}

func (w *sheetWriter) summary(s *reportviz.Summary) {
	row := 1
	if len(s.Metrics) > 0 {
		w.header(row, "Metric", "Value")
		for _, m := range s.Metrics {
			row++
			w.row(row, m.Label, m.Value)
		}
		row += 2
	}
	for i := range s.Sections {
		section := &s.Sections[i]
		if section.Title != "" {
			w.row(row, section.Title)
			row++
		}
		row = w.table(row, section) + 1
	}
	w.widths(2, 24)
}

func mustColumn(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
