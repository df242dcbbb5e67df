package excel

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"hrmonthly/internal/model"
	"hrmonthly/internal/parser"
)

// ReaderOptions 花名册读取选项
type ReaderOptions struct {
	SheetName      string // 为空时读取第一个工作表
	HeaderScanRows int    // 表头识别扫描的行数
	HeaderRow      int    // 识别失败时使用的表头行（从 1 开始）
}

// Reader 花名册读取器：Excel -> model.Table
type Reader struct {
	locator *parser.HeaderLocator
	opts    ReaderOptions
}

// NewReader 创建读取器，targets 为用于识别表头的目标列
func NewReader(targets []string, opts ReaderOptions) *Reader {
	if opts.HeaderRow <= 0 {
		opts.HeaderRow = 2
	}
	return &Reader{
		locator: parser.NewHeaderLocator(targets, opts.HeaderScanRows, opts.HeaderRow),
		opts:    opts,
	}
}

// ReadFile 读取文件；文件不存在时返回 ErrSourceUnavailable
func (r *Reader) ReadFile(path, label string) (*model.Table, *parser.SourceReport, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, eris.Wrapf(model.ErrSourceUnavailable, "%s: %s (%v)", label, path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "excel: open %s", path)
	}
	defer f.Close()
	return r.ReadWorkbook(f, label, filepath.Base(path))
}

// Read 从流读取
func (r *Reader) Read(reader io.Reader, label, filename string) (*model.Table, *parser.SourceReport, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "excel: open %s", filename)
	}
	defer f.Close()
	return r.ReadWorkbook(f, label, filename)
}

// ReadWorkbook 解析已打开的工作簿
func (r *Reader) ReadWorkbook(f *excelize.File, label, filename string) (*model.Table, *parser.SourceReport, error) {
	start := time.Now()

	sheet := r.opts.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, eris.Errorf("excel: %s has no sheets", filename)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "excel: read sheet %s of %s", sheet, filename)
	}

	report := &parser.SourceReport{
		Label:     label,
		Filename:  filename,
		SheetName: sheet,
	}

	header := r.locator.Locate(rows)
	if header.RowIndex < 0 {
		report.Duration = time.Since(start)
		return model.NewTable(), report, nil
	}

	columns := parser.NormalizeColumnNames(rows[header.RowIndex])
	table := model.NewTable(columns...)
	for _, row := range rows[header.RowIndex+1:] {
		if parser.IsBlankRow(row) {
			continue
		}
		table.AddRow(row...)
	}

	report.HeaderRow = header.RowIndex + 1
	report.Rows = table.Len()
	report.Columns = columns
	report.Duration = time.Since(start)
	return table, report, nil
}
