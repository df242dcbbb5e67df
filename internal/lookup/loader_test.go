package lookup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmonthly/internal/model"
)

func TestDefault_Loads(t *testing.T) {
	t.Parallel()

	tables, err := Default()
	require.NoError(t, err)

	assert.Equal(t, model.DefaultDeferSentinel, tables.DeferSentinel)
	assert.Equal(t, model.DefaultEducationGroup, tables.EducationDefault)
	assert.Equal(t, "参考二级组织", tables.DepartmentMapping["城区分公司"])
	assert.Contains(t, tables.SecondaryOrgMapping, "")
	assert.Equal(t, "销售代表", tables.FrontlinePositions[0])
	assert.Contains(t, tables.TargetColumns, model.ColDepartment)
	assert.Contains(t, tables.TargetColumns, model.ColAge)
}

func TestParse_DuplicateMappingKeyRejected(t *testing.T) {
	t.Parallel()

	data := []byte(`
department_mapping:
  综合部: 综合办公室
  综合部: 人力资源部
target_columns: [姓名]
`)
	_, err := Parse(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidLookup), "err=%v", err)
}

func TestParse_DuplicateListEntriesRejected(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"target":    "target_columns: [姓名, 姓名]\n",
		"positions": "target_columns: [姓名]\nfrontline_positions: [营业员, 营业员]\n",
		"depts":     "target_columns: [姓名]\nfrontline_departments: [东城区, 东城区]\n",
		"staff": `target_columns: [姓名]
special_staff:
  - {name: 张三, department: 财务部}
  - {name: 张三, department: 综合办公室}
`,
	}
	for name, data := range cases {
		data := data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(data))
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidLookup)
		})
	}
}

func TestParse_EmptyTargetColumnsRejected(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("department_mapping: {综合部: 综合办公室}\n"))
	assert.ErrorIs(t, err, model.ErrInvalidLookup)
}

func TestParse_AppliesDefaults(t *testing.T) {
	t.Parallel()

	tables, err := Parse([]byte("target_columns: [姓名, 年龄]\n"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDeferSentinel, tables.DeferSentinel)
	assert.Equal(t, model.DefaultEducationGroup, tables.EducationDefault)
	assert.NotNil(t, tables.DepartmentMapping)
	assert.NotNil(t, tables.SecondaryOrgMapping)
	assert.NotNil(t, tables.EducationMapping)
}

func TestLoad_FileAndEmptyPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lookups.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defer_sentinel: 见二级\ntarget_columns: [姓名]\n"), 0644))

	tables, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "见二级", tables.DeferSentinel)

	builtin, err := Load("  ")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDeferSentinel, builtin.DeferSentinel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
