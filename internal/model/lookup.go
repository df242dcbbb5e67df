package model

// DefaultDeferSentinel 部门映射中表示“按二级组织映射”的保留值
const DefaultDeferSentinel = "参考二级组织"

// DefaultEducationGroup 未匹配学历的默认分组
const DefaultEducationGroup = "高中以下"

// StaffOverride 特殊人员部门强制归属
type StaffOverride struct {
	Name       string `yaml:"name" json:"name"`
	Department string `yaml:"department" json:"department"`
}

// LookupTables 单次运行期间只读的映射表集合
type LookupTables struct {
	DeferSentinel        string            `yaml:"defer_sentinel" json:"deferSentinel"`
	DepartmentMapping    map[string]string `yaml:"department_mapping" json:"departmentMapping"`
	SecondaryOrgMapping  map[string]string `yaml:"secondary_org_mapping" json:"secondaryOrgMapping"`
	FrontlinePositions   []string          `yaml:"frontline_positions" json:"frontlinePositions"`
	FrontlineDepartments []string          `yaml:"frontline_departments" json:"frontlineDepartments"`
	SpecialStaff         []StaffOverride   `yaml:"special_staff" json:"specialStaff"`
	EducationMapping     map[string]string `yaml:"education_mapping" json:"educationMapping"`
	EducationDefault     string            `yaml:"education_default" json:"educationDefault"`
	TargetColumns        []string          `yaml:"target_columns" json:"targetColumns"`
}

// Clone 深拷贝（测试中修改映射用）
func (l *LookupTables) Clone() *LookupTables {
	if l == nil {
		return nil
	}
	out := &LookupTables{
		DeferSentinel:        l.DeferSentinel,
		DepartmentMapping:    cloneMap(l.DepartmentMapping),
		SecondaryOrgMapping:  cloneMap(l.SecondaryOrgMapping),
		FrontlinePositions:   append([]string(nil), l.FrontlinePositions...),
		FrontlineDepartments: append([]string(nil), l.FrontlineDepartments...),
		SpecialStaff:         append([]StaffOverride(nil), l.SpecialStaff...),
		EducationMapping:     cloneMap(l.EducationMapping),
		EducationDefault:     l.EducationDefault,
		TargetColumns:        append([]string(nil), l.TargetColumns...),
	}
	return out
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
