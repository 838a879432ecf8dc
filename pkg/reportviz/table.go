package reportviz

// tableShapes lists the accepted {columns, rows} field name pairs.
var tableShapes = [][2]string{
	{"headers", "rows"},
	{"columns", "data"},
}

// extractTable finds the column and row lists of a table-shaped result. Columns
// are inferred from the first row when only rows are present.
func extractTable(r Result) ([]Column, []any, bool) {
	for _, shape := range tableShapes {
		rawCols, colsOK := asSlice(r[shape[0]])
		rows, rowsOK := asSlice(r[shape[1]])
		if colsOK && rowsOK {
			cols := parseColumns(rawCols)
			if len(cols) == 0 {
				cols = inferColumns(rows)
			}
			if len(cols) == 0 {
				return nil, nil, false
			}
			return cols, rows, true
		}
	}
	if rows, ok := asSlice(r["rows"]); ok && len(rows) > 0 {
		if cols := inferColumns(rows); len(cols) > 0 {
			return cols, rows, true
		}
	}
	return nil, nil, false
}

// parseColumns accepts plain key strings or {key, label} objects.
func parseColumns(raw []any) []Column {
	cols := make([]Column, 0, len(raw))
	for _, c := range raw {
		switch v := c.(type) {
		case string:
			cols = append(cols, Column{Key: v, Label: Humanize(v)})
		default:
			m, ok := asMap(v)
			if !ok {
				continue
			}
			key := stringField(m, "key")
			if key == "" {
				key = stringField(m, "field")
			}
			if key == "" {
				continue
			}
			label := stringField(m, "label")
			if label == "" {
				label = Humanize(key)
			}
			cols = append(cols, Column{Key: key, Label: label})
		}
	}
	return cols
}

func inferColumns(rows []any) []Column {
	for _, row := range rows {
		m, ok := asMap(row)
		if !ok {
			continue
		}
		cols := make([]Column, 0, len(m))
		for _, k := range sortedKeys(m) {
			cols = append(cols, Column{Key: k, Label: Humanize(k)})
		}
		return cols
	}
	return nil
}

// buildTable formats rows against columns. Object rows are read through dotted
// paths, array rows positionally.
func buildTable(f *Formatter, title string, cols []Column, rows []any) *Table {
	t := &Table{Title: title, Columns: cols, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cells := make([]string, len(cols))
		switch v := row.(type) {
		case []any:
			for i := range cols {
				if i < len(v) {
					cells[i] = f.Format(v[i])
				} else {
					cells[i] = EmptyCell
				}
			}
		default:
			m, ok := asMap(v)
			if !ok {
				continue
			}
			for i, col := range cols {
				cells[i] = cellValue(f, m, col.Key)
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func cellValue(f *Formatter, row map[string]any, path string) string {
	v, ok := lookupPath(row, path)
	if !ok {
		return EmptyCell
	}
	return f.Format(v)
}

// keyValueTable lists fields as Field/Value rows.
func keyValueTable(f *Formatter, title string, m map[string]any, keys []string) *Table {
	t := &Table{
		Title:   title,
		Columns: []Column{{Key: "field", Label: "Field"}, {Key: "value", Label: "Value"}},
		Rows:    make([][]string, 0, len(keys)),
	}
	for _, k := range keys {
		t.Rows = append(t.Rows, []string{Humanize(k), f.Format(m[k])})
	}
	return t
}
