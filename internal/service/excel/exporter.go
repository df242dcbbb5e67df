package excel

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"hrmonthly/internal/model"
)

// MergedSheetName 合并结果工作表名
const MergedSheetName = "合并数据"

// numericColumns 以数值写出的列
var numericColumns = map[string]bool{
	model.ColMonth: true,
	model.ColAge:   true,
}

// WriteTable 将表写入新工作簿
func WriteTable(t *model.Table, sheetName string) (*excelize.File, error) {
	if sheetName == "" {
		sheetName = MergedSheetName
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, eris.Wrap(err, "excel: rename sheet")
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, eris.Wrap(err, "excel: write header")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "excel: header style")
	}
	if err := f.SetRowStyle(sheetName, 1, 1, headerStyle); err != nil {
		return nil, eris.Wrap(err, "excel: apply header style")
	}

	for i, row := range t.Rows {
		values := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			v := ""
			if j < len(row) {
				v = row[j]
			}
			values[j] = cellValue(col, v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, eris.Wrapf(err, "excel: write row %d", i+2)
		}
	}

	if len(t.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(t.Columns))
		_ = f.SetColWidth(sheetName, "A", last, 14)
	}
	return f, nil
}

// SaveTable 写表并保存到 path
func SaveTable(t *model.Table, path string) error {
	f, err := WriteTable(t, MergedSheetName)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return eris.Wrapf(err, "excel: save %s", path)
	}
	return nil
}

func cellValue(column, v string) interface{} {
	if !numericColumns[column] || v == "" {
		return v
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
