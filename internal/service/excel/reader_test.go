package excel_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrmonthly/internal/model"
	"hrmonthly/internal/service/excel"
)

var rosterTargets = []string{
	model.ColDepartment, model.ColSecondaryOrg, model.ColPosition,
	model.ColName, model.ColGender, model.ColAge, model.ColEducation,
}

func buildRoster(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	return f
}

func TestReader_SkipsTitleRow(t *testing.T) {
	f := buildRoster(t, [][]interface{}{
		{"2024年3月花名册"},
		{"部门/区县名称", "岗位名称", " 姓 名", "年龄"},
		{"东城区", "销售代表", "张三", 28},
		{},
		{"西城区", "客户经理", "李四", 41},
	})

	table, rep, err := excel.NewReader(rosterTargets, excel.ReaderOptions{}).ReadWorkbook(f, "文件1", "a.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"部门/区县名称", "岗位名称", "姓名", "年龄"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "张三", table.Value(0, model.ColName))
	assert.Equal(t, "41", table.Value(1, model.ColAge))
	assert.Equal(t, 2, rep.HeaderRow)
	assert.Equal(t, "Sheet1", rep.SheetName)
	assert.Equal(t, 2, rep.Rows)
}

func TestReader_HeaderOnFirstRow(t *testing.T) {
	f := buildRoster(t, [][]interface{}{
		{"部门/区县名称", "姓名", "性别"},
		{"东城区", "张三", "男"},
	})

	table, rep, err := excel.NewReader(rosterTargets, excel.ReaderOptions{}).ReadWorkbook(f, "文件1", "a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.HeaderRow)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "男", table.Value(0, model.ColGender))
}

func TestReader_ShortRowsPadded(t *testing.T) {
	f := buildRoster(t, [][]interface{}{
		{"标题"},
		{"部门/区县名称", "姓名", "性别"},
		{"东城区"},
	})

	table, _, err := excel.NewReader(rosterTargets, excel.ReaderOptions{}).ReadWorkbook(f, "文件1", "a.xlsx")
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Len(t, table.Rows[0], 3)
	assert.Equal(t, "", table.Value(0, model.ColGender))
}

func TestReader_FromStream(t *testing.T) {
	f := buildRoster(t, [][]interface{}{
		{"标题"},
		{"部门/区县名称", "姓名"},
		{"东城区", "张三"},
	})
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, rep, err := excel.NewReader(rosterTargets, excel.ReaderOptions{}).Read(&buf, "文件2", "b.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "b.xlsx", rep.Filename)
	assert.Equal(t, 1, table.Len())
}

func TestReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")
	_, _, err := excel.NewReader(rosterTargets, excel.ReaderOptions{}).ReadFile(path, "文件1")
	require.Error(t, err)
	assert.True(t, eris.Is(err, model.ErrSourceUnavailable))
}

func TestReader_NamedSheet(t *testing.T) {
	f := buildRoster(t, [][]interface{}{{"无关"}})
	_, err := f.NewSheet("花名册")
	require.NoError(t, err)
	header := []interface{}{"部门/区县名称", "姓名"}
	require.NoError(t, f.SetSheetRow("花名册", "A1", &header))
	row := []interface{}{"东城区", "张三"}
	require.NoError(t, f.SetSheetRow("花名册", "A2", &row))

	table, rep, err := excel.NewReader(rosterTargets, excel.ReaderOptions{SheetName: "花名册"}).ReadWorkbook(f, "文件1", "a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "花名册", rep.SheetName)
	assert.Equal(t, "张三", table.Value(0, model.ColName))
}
