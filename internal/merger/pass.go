package merger

import (
	"strconv"

	"go.uber.org/zap"

	"hrmonthly/internal/model"
	"hrmonthly/internal/normalizer"
)

// normalize 规范化流程，顺序固定：
// 月份列 -> 部门映射 -> 是否一线 -> 特殊人员 -> 是否一线销售人员 -> 年龄/学历
func (e *Engine) normalize(t *model.Table, month int, diag *model.Diagnostics) {
	t.InsertColumn(0, model.ColMonth, strconv.Itoa(month))

	hasDept := t.Has(model.ColDepartment)
	hasSecondary := t.Has(model.ColSecondaryOrg)
	hasPosition := t.Has(model.ColPosition)

	if hasDept {
		for i := range t.Rows {
			secondary := ""
			if hasSecondary {
				secondary = t.Value(i, model.ColSecondaryOrg)
			}
			t.Set(i, model.ColDepartment, e.norm.ResolveDepartment(t.Value(i, model.ColDepartment), secondary))
		}
	}

	if hasDept && hasPosition {
		t.AppendColumn(model.ColFrontlineDepartment, func(i int) string {
			return e.norm.IsFrontlineDepartment(t.Value(i, model.ColDepartment), t.Value(i, model.ColPosition))
		})
	}

	if hasDept && t.Has(model.ColName) {
		e.applySpecialStaff(t)
	}

	if hasPosition {
		count := 0
		t.AppendColumn(model.ColFrontlineStaff, func(i int) string {
			v := e.norm.IsFrontlineStaff(t.Value(i, model.ColPosition))
			if v == model.Yes {
				count++
			}
			return v
		})
		diag.FrontlineStaffCount = count
		e.log.Info("frontline staff counted", zap.Int("count", count))
	}

	e.standardize(t, diag)
}

// applySpecialStaff 按姓名强制覆盖部门，优先级高于部门映射
func (e *Engine) applySpecialStaff(t *model.Table) {
	deptIdx := t.Index(model.ColDepartment)
	nameIdx := t.Index(model.ColName)
	for _, s := range e.norm.Tables().SpecialStaff {
		for _, row := range t.Rows {
			if row[nameIdx] == s.Name {
				row[deptIdx] = s.Department
			}
		}
	}
}

// standardize 年龄补齐与分段、学历分组
func (e *Engine) standardize(t *model.Table, diag *model.Diagnostics) {
	if t.Has(model.ColAge) {
		ages := make([]*float64, len(t.Rows))
		sum, n := 0.0, 0
		for i := range t.Rows {
			if v, ok := normalizer.ParseAge(t.Value(i, model.ColAge)); ok {
				v := v
				ages[i] = &v
				sum += v
				n++
			}
		}

		var mean *float64
		if n > 0 {
			m := sum / float64(n)
			mean = &m
			diag.MeanAge = m
		}

		for i := range t.Rows {
			if ages[i] == nil {
				ages[i] = mean
				if mean != nil {
					diag.ImputedAges++
				}
			}
			if ages[i] == nil {
				t.Set(i, model.ColAge, "")
			} else {
				t.Set(i, model.ColAge, normalizer.FormatAge(*ages[i]))
			}
		}
		if diag.ImputedAges > 0 {
			e.log.Info("missing ages filled with batch mean",
				zap.Int("rows", diag.ImputedAges), zap.Float64("mean", diag.MeanAge))
		}
		t.AppendColumn(model.ColAgeBand, func(i int) string {
			return normalizer.CategorizeAge(ages[i])
		})
	}

	if t.Has(model.ColEducation) {
		t.AppendColumn(model.ColEducationGroup, func(i int) string {
			return e.norm.StandardizeEducation(t.Value(i, model.ColEducation))
		})
	}
}
