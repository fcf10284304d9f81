package facet

import "github.com/matzehuels/stackchart/pkg/data"

// rectPanels builds one panel per (column, row) value pair, row by row.
// Pairs without rows still get an empty panel so the grid stays regular.
func rectPanels(rows []data.Datum, cfg Config) []*Data {
	colField, rowField := field(cfg.Fields, 0), field(cfg.Fields, 1)
	cols, rs := values(rows, colField), values(rows, rowField)
	panels := make([]*Data, 0, len(cols)*len(rs))
	for ri, rv := range rs {
		for ci, cv := range cols {
			panels = append(panels, &Data{
				Type:     KindRect,
				ColField: colField,
				RowField: rowField,
				ColValue: cv,
				RowValue: rv,
				ColIndex: ci,
				RowIndex: ri,
				ColCount: len(cols),
				RowCount: len(rs),
				Rows:     matching(rows, colField, cv, rowField, rv),
				Region:   region(ci, ri, len(cols), len(rs), cfg.Spacing),
			})
		}
	}
	return panels
}

// listPanels wraps one panel per value into cfg.Cols columns.
func listPanels(rows []data.Datum, cfg Config) []*Data {
	f := field(cfg.Fields, 0)
	vals := values(rows, f)
	n := len(vals)
	if n == 0 {
		return nil
	}
	cols := cfg.Cols
	if cols <= 0 || cols > n {
		cols = n
	}
	rowCount := (n + cols - 1) / cols
	panels := make([]*Data, n)
	for i, v := range vals {
		panels[i] = &Data{
			Type:     KindList,
			ColField: f,
			ColValue: v,
			ColIndex: i % cols,
			RowIndex: i / cols,
			ColCount: cols,
			RowCount: rowCount,
			Rows:     matching(rows, f, v, "", nil),
			Region:   region(i%cols, i/cols, cols, rowCount, cfg.Spacing),
		}
	}
	return panels
}
