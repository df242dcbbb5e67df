package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "部门/区县名称", NormalizeColumnName(" 部门／区县名称 "))
	assert.Equal(t, "BU/营服名称", NormalizeColumnName("ＢＵ/营服\n名称"))
	assert.Equal(t, "姓名", NormalizeColumnName("姓　名"))
	assert.Equal(t, "", NormalizeColumnName("  \t"))
}

func TestExtractMonth(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"3月花名册.xlsx":     3,
		"2025年03月人员信息":   3,
		"2025年12月":       12,
		"花名册_11月_合同制":    11,
	}
	for in, want := range cases {
		got, ok := ExtractMonth(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"花名册.xlsx", "13月", "0月"} {
		_, ok := ExtractMonth(in)
		assert.False(t, ok, in)
	}
}

func TestCountMatches(t *testing.T) {
	t.Parallel()

	targets := []string{"姓名", "性别", "部门/区县名称"}
	assert.Equal(t, 2, CountMatches([]string{"姓 名", "性别", "性别", "备注"}, targets))
	assert.Equal(t, 0, CountMatches(nil, targets))
}

func TestIsBlankRow(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBlankRow(nil))
	assert.True(t, IsBlankRow([]string{"", " ", "\t"}))
	assert.False(t, IsBlankRow([]string{"", "x"}))
}
