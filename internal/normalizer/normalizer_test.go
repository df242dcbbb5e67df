package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hrmonthly/internal/model"
)

func testTables() *model.LookupTables {
	return &model.LookupTables{
		DeferSentinel: model.DefaultDeferSentinel,
		DepartmentMapping: map[string]string{
			"X":     model.DefaultDeferSentinel,
			"综合部":   "综合办公室",
			"城区分公司": model.DefaultDeferSentinel,
		},
		SecondaryOrgMapping: map[string]string{
			"Y":      "Z",
			"":       "城区默认",
			"东城营服中心": "东城区",
		},
		FrontlinePositions:   []string{"销售代表"},
		FrontlineDepartments: []string{"东城区", "分公司"},
		EducationMapping: map[string]string{
			"大专":   "大专",
			"大学本科": "本科",
		},
		EducationDefault: model.DefaultEducationGroup,
		TargetColumns:    []string{model.ColName},
	}
}

func ptr(v float64) *float64 { return &v }

func TestResolveDepartment_SentinelFallback(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	assert.Equal(t, "Z", n.ResolveDepartment("X", "Y"))
	assert.Equal(t, "X", n.ResolveDepartment("X", "unknown-secondary"))
	assert.Equal(t, "Z", n.ResolveDepartment(" X ", "  Y "))
	// 二级组织缺失时查 "" 默认项
	assert.Equal(t, "城区默认", n.ResolveDepartment("X", ""))
	assert.Equal(t, "东城区", n.ResolveDepartment("城区分公司", "东城营服中心"))
}

func TestResolveDepartment_PassThrough(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	assert.Equal(t, "", n.ResolveDepartment("", "Y"))
	assert.Equal(t, "综合办公室", n.ResolveDepartment("  综合部", ""))
	assert.Equal(t, "未登记部门", n.ResolveDepartment(" 未登记部门 ", "Y"))
	assert.Equal(t, "", n.ResolveDepartment("   ", ""))
}

func TestIsFrontlineStaff(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	assert.Equal(t, model.Yes, n.IsFrontlineStaff("销售代表"))
	assert.Equal(t, model.Yes, n.IsFrontlineStaff("高级销售代表"))
	// 岗位名被清单项包含
	assert.Equal(t, model.Yes, n.IsFrontlineStaff("销售"))
	assert.Equal(t, model.No, n.IsFrontlineStaff("财务"))
	assert.Equal(t, model.No, n.IsFrontlineStaff(""))
	assert.Equal(t, model.No, n.IsFrontlineStaff("   "))
}

func TestIsFrontlineStaff_BlankPositionNeverMatches(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	// 去空白后为空的岗位不参与包含匹配，否则会命中任意清单项
	for _, pos := range []string{" ", "\t", "\u3000", " \n "} {
		assert.Equal(t, model.No, n.IsFrontlineStaff(pos), "%q", pos)
	}
	assert.Equal(t, model.No, n.IsFrontlineDepartment("", "   "))
}

func TestIsFrontlineDepartment(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	assert.Equal(t, model.Yes, n.IsFrontlineDepartment("东城区", "财务"))
	assert.Equal(t, model.Yes, n.IsFrontlineDepartment("县域分公司", ""))
	assert.Equal(t, model.No, n.IsFrontlineDepartment("综合办公室", "销售代表"))
	// 部门为空时按岗位判定
	assert.Equal(t, model.Yes, n.IsFrontlineDepartment("", "销售代表"))
	assert.Equal(t, model.No, n.IsFrontlineDepartment("", ""))
}

func TestCategorizeAge_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		age  *float64
		want string
	}{
		{nil, model.AgeBandUnknown},
		{ptr(0), model.AgeBandUnder30},
		{ptr(29.9), model.AgeBandUnder30},
		{ptr(30), model.AgeBand30To40},
		{ptr(39.9), model.AgeBand30To40},
		{ptr(40), model.AgeBand40To50},
		{ptr(49.99), model.AgeBand40To50},
		{ptr(50), model.AgeBandOver50},
		{ptr(75), model.AgeBandOver50},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategorizeAge(tc.age))
	}
}

func TestStandardizeEducation(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	assert.Equal(t, "大专", n.StandardizeEducation("大专"))
	assert.Equal(t, "本科", n.StandardizeEducation(" 大学本科 "))
	assert.Equal(t, model.DefaultEducationGroup, n.StandardizeEducation("初中"))
	assert.Equal(t, model.DefaultEducationGroup, n.StandardizeEducation(""))

	tables := testTables()
	tables.EducationDefault = ""
	assert.Equal(t, model.DefaultEducationGroup, New(tables).StandardizeEducation("小学"))
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	v, ok := ParseAge("28")
	assert.True(t, ok)
	assert.Equal(t, 28.0, v)

	v, ok = ParseAge(" 35.5 ")
	assert.True(t, ok)
	assert.Equal(t, 35.5, v)

	// 带单位或千分位的文本不做清洗，按缺失处理
	for _, raw := range []string{"", "  ", "abc", "NaN", "Inf", "35岁", "1,000"} {
		_, ok := ParseAge(raw)
		assert.False(t, ok, raw)
	}

	assert.Equal(t, "28", FormatAge(28))
	assert.Equal(t, "36.5", FormatAge(36.5))
}

func TestTotality_ArbitraryInput(t *testing.T) {
	t.Parallel()
	n := New(testTables())

	inputs := []string{"", " ", "\t", "X", "销售", "无此项", "　综合部　"}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_ = n.ResolveDepartment(in, in)
			assert.Contains(t, []string{model.Yes, model.No}, n.IsFrontlineStaff(in))
			assert.Contains(t, []string{model.Yes, model.No}, n.IsFrontlineDepartment(in, in))
			assert.NotEmpty(t, n.StandardizeEducation(in))
		})
	}
}
