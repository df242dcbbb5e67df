// Package normalizer 字段级规范化：部门归属、一线判定、年龄分段、学历分组。
//
// 所有方法对任意输入（含空串）都有确定输出，不返回错误。
package normalizer

import (
	"math"
	"strconv"
	"strings"

	"hrmonthly/internal/model"
)

// Normalizer 字段规范化器，持有只读映射表
type Normalizer struct {
	tables *model.LookupTables
}

// New 创建规范化器
func New(tables *model.LookupTables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Tables 返回映射表
func (n *Normalizer) Tables() *model.LookupTables {
	return n.tables
}

// ResolveDepartment 部门名称映射；映射值为保留值时按二级组织映射，查不到则保留原名
func (n *Normalizer) ResolveDepartment(name, secondaryOrg string) string {
	if name == "" {
		return name
	}
	dept := strings.TrimSpace(name)

	mapped, ok := n.tables.DepartmentMapping[dept]
	if !ok {
		return dept
	}
	if mapped == n.tables.DeferSentinel {
		key := strings.TrimSpace(secondaryOrg)
		if v, ok := n.tables.SecondaryOrgMapping[key]; ok {
			return v
		}
		return dept
	}
	return mapped
}

// IsFrontlineStaff 岗位是否属于一线：先精确匹配，再双向包含的模糊匹配
func (n *Normalizer) IsFrontlineStaff(position string) string {
	pos := strings.TrimSpace(position)
	if pos == "" {
		return model.No
	}
	for _, p := range n.tables.FrontlinePositions {
		if p == pos {
			return model.Yes
		}
	}
	for _, p := range n.tables.FrontlinePositions {
		if p == "" {
			continue
		}
		if strings.Contains(pos, p) || strings.Contains(p, pos) {
			return model.Yes
		}
	}
	return model.No
}

// IsFrontlineDepartment 部门是否为一线服务单元。
// 部门非空时按一线部门清单判定（精确或部门名包含清单项）；部门为空时退回岗位判定。
func (n *Normalizer) IsFrontlineDepartment(department, position string) string {
	dept := strings.TrimSpace(department)
	if dept == "" {
		return n.IsFrontlineStaff(position)
	}
	for _, d := range n.tables.FrontlineDepartments {
		if d == "" {
			continue
		}
		if d == dept || strings.Contains(dept, d) {
			return model.Yes
		}
	}
	return model.No
}

// CategorizeAge 年龄分段，nil 表示缺失
func CategorizeAge(age *float64) string {
	if age == nil {
		return model.AgeBandUnknown
	}
	switch a := *age; {
	case a < 30:
		return model.AgeBandUnder30
	case a < 40:
		return model.AgeBand30To40
	case a < 50:
		return model.AgeBand40To50
	default:
		return model.AgeBandOver50
	}
}

// StandardizeEducation 学历分组，未知或缺失归入默认分组
func (n *Normalizer) StandardizeEducation(level string) string {
	key := strings.TrimSpace(level)
	if key == "" {
		return n.educationDefault()
	}
	if v, ok := n.tables.EducationMapping[key]; ok {
		return v
	}
	return n.educationDefault()
}

func (n *Normalizer) educationDefault() string {
	if n.tables.EducationDefault == "" {
		return model.DefaultEducationGroup
	}
	return n.tables.EducationDefault
}

// ParseAge 把单元格转换为年龄数值；空值、非数字、NaN/Inf 视为缺失
func ParseAge(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatAge 年龄写回单元格的文本形式
func FormatAge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
