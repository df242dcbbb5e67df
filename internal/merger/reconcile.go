package merger

import "hrmonthly/internal/model"

// ExtractTargetColumns 按目标列投影：保留目标列顺序，缺失列补空串，多余列丢弃。
// 返回投影后的表和该来源的缺列信息（无缺列时 Columns 为空）。
func ExtractTargetColumns(table *model.Table, targets []string, source string) (*model.Table, model.SchemaMismatch) {
	mismatch := model.SchemaMismatch{Source: source}

	positions := make([]int, len(targets))
	for i, col := range targets {
		positions[i] = table.Index(col)
		if positions[i] < 0 {
			mismatch.Columns = append(mismatch.Columns, col)
		}
	}

	out := model.NewTable(targets...)
	out.Rows = make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		projected := make([]string, len(targets))
		for i, pos := range positions {
			if pos >= 0 && pos < len(row) {
				projected[i] = row[pos]
			}
		}
		out.Rows = append(out.Rows, projected)
	}
	return out, mismatch
}

// concat 纵向拼接，两张表的列必须一致
func concat(a, b *model.Table) *model.Table {
	out := model.NewTable(a.Columns...)
	out.Rows = make([][]string, 0, len(a.Rows)+len(b.Rows))
	out.Rows = append(out.Rows, a.Rows...)
	out.Rows = append(out.Rows, b.Rows...)
	return out
}
