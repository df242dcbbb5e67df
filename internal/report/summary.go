// Package report 基于合并后的花名册生成月报统计
package report

import (
	"sort"
	"strings"

	"hrmonthly/internal/model"
)

// Summarize 统计总人数及各维度结构；缺少对应列时该维度为空
func Summarize(t *model.Table) model.SummaryStats {
	stats := model.SummaryStats{
		GroupSummary:   summarizeGroup(t, allRows(t)),
		EmploymentType: Breakdown(t, model.ColEmploymentType, nil),
		Department:     Breakdown(t, model.ColDepartment, nil),
		FrontlineStaff: Breakdown(t, model.ColFrontlineStaff, nil),
	}

	if t.Has(model.ColEmploymentType) {
		contract := []int{}
		for i := range t.Rows {
			if strings.TrimSpace(t.Value(i, model.ColEmploymentType)) == model.EmploymentContract {
				contract = append(contract, i)
			}
		}
		g := summarizeGroup(t, contract)
		stats.Contract = &g
	}
	return stats
}

func summarizeGroup(t *model.Table, rows []int) model.GroupSummary {
	return model.GroupSummary{
		Total:     len(rows),
		Gender:    Breakdown(t, model.ColGender, rows),
		Education: Breakdown(t, model.ColEducationGroup, rows),
		AgeBand:   Breakdown(t, model.ColAgeBand, rows),
	}
}

// Breakdown 按列取值计数，人数降序，同数按首次出现顺序；空值不计。
// rows 为 nil 时统计全部行。
func Breakdown(t *model.Table, column string, rows []int) model.Breakdown {
	if !t.Has(column) {
		return model.Breakdown{}
	}
	if rows == nil {
		rows = allRows(t)
	}

	index := make(map[string]int)
	out := model.Breakdown{}
	for _, i := range rows {
		v := strings.TrimSpace(t.Value(i, column))
		if v == "" {
			continue
		}
		if pos, ok := index[v]; ok {
			out[pos].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, model.Count{Label: v, Count: 1})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

// Share 占比，总数为 0 时返回 0
func Share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func allRows(t *model.Table) []int {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}
