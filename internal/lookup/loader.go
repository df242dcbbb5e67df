// Package lookup 加载并校验部门/学历/一线岗位等映射表
package lookup

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"hrmonthly/internal/model"
)

//go:embed default_lookups.yaml
var defaultLookups []byte

// Default 返回内置映射表
func Default() (*model.LookupTables, error) {
	return Parse(defaultLookups)
}

// Load 从 YAML 文件加载映射表；path 为空时使用内置映射表
func Load(path string) (*model.LookupTables, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "lookup: read %s", path)
	}
	tables, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "lookup: %s", path)
	}
	return tables, nil
}

// Parse 解析 YAML 映射表并校验
func Parse(data []byte) (*model.LookupTables, error) {
	var tables model.LookupTables
	// yaml.v3 遇到重复的映射键直接报错
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, eris.Wrapf(model.ErrInvalidLookup, "decode: %v", err)
	}
	applyDefaults(&tables)
	if err := Validate(&tables); err != nil {
		return nil, err
	}
	return &tables, nil
}

func applyDefaults(t *model.LookupTables) {
	if t.DeferSentinel == "" {
		t.DeferSentinel = model.DefaultDeferSentinel
	}
	if t.EducationDefault == "" {
		t.EducationDefault = model.DefaultEducationGroup
	}
	if t.DepartmentMapping == nil {
		t.DepartmentMapping = map[string]string{}
	}
	if t.SecondaryOrgMapping == nil {
		t.SecondaryOrgMapping = map[string]string{}
	}
	if t.EducationMapping == nil {
		t.EducationMapping = map[string]string{}
	}
}

// Validate 校验映射表结构
func Validate(t *model.LookupTables) error {
	if t == nil {
		return eris.Wrap(model.ErrInvalidLookup, "nil tables")
	}
	if len(t.TargetColumns) == 0 {
		return eris.Wrap(model.ErrInvalidLookup, "target_columns is empty")
	}
	if dup, ok := firstDuplicate(t.TargetColumns); ok {
		return eris.Wrapf(model.ErrInvalidLookup, "duplicate target column %q", dup)
	}
	for _, col := range t.TargetColumns {
		if strings.TrimSpace(col) == "" {
			return eris.Wrap(model.ErrInvalidLookup, "blank target column")
		}
	}
	if dup, ok := firstDuplicate(t.FrontlinePositions); ok {
		return eris.Wrapf(model.ErrInvalidLookup, "duplicate frontline position %q", dup)
	}
	if dup, ok := firstDuplicate(t.FrontlineDepartments); ok {
		return eris.Wrapf(model.ErrInvalidLookup, "duplicate frontline department %q", dup)
	}
	for k := range t.DepartmentMapping {
		if strings.TrimSpace(k) == "" {
			return eris.Wrap(model.ErrInvalidLookup, "blank key in department_mapping")
		}
	}

	names := make([]string, 0, len(t.SpecialStaff))
	for _, s := range t.SpecialStaff {
		if strings.TrimSpace(s.Name) == "" {
			return eris.Wrap(model.ErrInvalidLookup, "special_staff entry without name")
		}
		names = append(names, s.Name)
	}
	if dup, ok := firstDuplicate(names); ok {
		return eris.Wrapf(model.ErrInvalidLookup, "duplicate special staff %q", dup)
	}
	return nil
}

func firstDuplicate(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return "", false
}
