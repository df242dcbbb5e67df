package excel

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"hrmonthly/internal/model"
	"hrmonthly/internal/report"
)

// 月报工作表名
const (
	SummarySheetName    = "用工总体情况"
	DepartmentSheetName = "部门结构"
)

// MonthReportExporter 用工月报导出：总体情况 + 部门结构
type MonthReportExporter struct {
	year  int
	month int
}

// NewMonthReportExporter 创建月报导出器
func NewMonthReportExporter(year, month int) *MonthReportExporter {
	return &MonthReportExporter{year: year, month: month}
}

// FileName 月报文件名：用工月报_YYYYMM.xlsx
func (e *MonthReportExporter) FileName() string {
	return fmt.Sprintf("用工月报_%04d%02d.xlsx", e.year, e.month)
}

type reportStyles struct {
	title   int
	section int
	bold    int
	percent int
}

// Export 生成月报工作簿
func (e *MonthReportExporter) Export(stats model.SummaryStats) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheetName); err != nil {
		return nil, eris.Wrap(err, "report: rename sheet")
	}

	styles, err := newReportStyles(f)
	if err != nil {
		return nil, err
	}

	if err := e.writeSummarySheet(f, stats, styles); err != nil {
		return nil, err
	}
	if err := e.writeDepartmentSheet(f, stats, styles); err != nil {
		return nil, err
	}
	return f, nil
}

// Save 导出并保存到目录，返回文件路径
func (e *MonthReportExporter) Save(stats model.SummaryStats, dir string) (string, error) {
	f, err := e.Export(stats)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, e.FileName())
	if err := f.SaveAs(path); err != nil {
		return "", eris.Wrapf(err, "report: save %s", path)
	}
	return path, nil
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var s reportStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return s, eris.Wrap(err, "report: title style")
	}
	if s.section, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}); err != nil {
		return s, eris.Wrap(err, "report: section style")
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, eris.Wrap(err, "report: bold style")
	}
	numFmt := "0.0%"
	if s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, eris.Wrap(err, "report: percent style")
	}
	return s, nil
}

type sectionItem struct {
	title string
	data  model.Breakdown
}

func (e *MonthReportExporter) writeSummarySheet(f *excelize.File, stats model.SummaryStats, st reportStyles) error {
	sheet := SummarySheetName
	title := fmt.Sprintf("%d年%02d月总体用工情况", e.year, e.month)
	if err := writeTitle(f, sheet, title, "D1", st.title); err != nil {
		return err
	}

	w := &sheetWriter{f: f, sheet: sheet, row: 3}
	w.text(fmt.Sprintf("一、总体用工结构（总人数: %d人）", stats.Total), st.section)
	w.row++

	items := []sectionItem{
		{"性别结构", stats.Gender},
		{"学历结构", stats.Education},
		{"年龄结构", stats.AgeBand},
		{"用工性质", stats.EmploymentType},
		{"部门结构", stats.Department},
		{"一线人员", stats.FrontlineStaff},
	}
	w.sections(items, stats.Total, st)

	if c := stats.Contract; c != nil && c.Total > 0 {
		w.text("二、合同制员工结构分析", st.section)
		w.text(fmt.Sprintf("合同制员工总人数: %d人", c.Total), st.bold)
		w.row++
		w.sections([]sectionItem{
			{"性别结构", c.Gender},
			{"学历结构", c.Education},
			{"年龄结构", c.AgeBand},
		}, c.Total, st)
	}
	if w.err != nil {
		return eris.Wrap(w.err, "report: summary sheet")
	}

	_ = f.SetColWidth(sheet, "A", "A", 36)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	return nil
}

func (e *MonthReportExporter) writeDepartmentSheet(f *excelize.File, stats model.SummaryStats, st reportStyles) error {
	sheet := DepartmentSheetName
	if _, err := f.NewSheet(sheet); err != nil {
		return eris.Wrap(err, "report: new department sheet")
	}
	title := fmt.Sprintf("%d年%02d月部门结构", e.year, e.month)
	if err := writeTitle(f, sheet, title, "C1", st.title); err != nil {
		return err
	}

	w := &sheetWriter{f: f, sheet: sheet, row: 3}
	if len(stats.Department) == 0 {
		w.text("无部门数据", 0)
		return w.err
	}

	w.text("各部门人员统计", st.section)
	w.set("A", "部门名称")
	w.set("B", "人数")
	w.set("C", "占比")
	w.style("A", "C", st.bold)
	w.row++
	for _, c := range stats.Department {
		w.countRow(c, stats.Total, st.percent)
	}
	if w.err != nil {
		return eris.Wrap(w.err, "report: department sheet")
	}

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	return nil
}

func writeTitle(f *excelize.File, sheet, title, mergeTo string, style int) error {
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return eris.Wrap(err, "report: title")
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", style); err != nil {
		return eris.Wrap(err, "report: title style")
	}
	if err := f.MergeCell(sheet, "A1", mergeTo); err != nil {
		return eris.Wrap(err, "report: merge title")
	}
	return nil
}

// sheetWriter 顺序写行，记录第一个错误
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) set(col string, v interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, fmt.Sprintf("%s%d", col, w.row), v)
}

func (w *sheetWriter) style(from, to string, style int) {
	if w.err != nil || style == 0 {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, fmt.Sprintf("%s%d", from, w.row), fmt.Sprintf("%s%d", to, w.row), style)
}

func (w *sheetWriter) text(s string, style int) {
	w.set("A", s)
	w.style("A", "A", style)
	w.row++
}

func (w *sheetWriter) countRow(c model.Count, total, percentStyle int) {
	w.set("A", c.Label)
	w.set("B", c.Count)
	if total > 0 {
		w.set("C", report.Share(c.Count, total))
		w.style("C", "C", percentStyle)
	}
	w.row++
}

func (w *sheetWriter) sections(items []sectionItem, total int, st reportStyles) {
	n := 0
	for _, item := range items {
		if len(item.data) == 0 {
			continue
		}
		n++
		w.text(fmt.Sprintf("%d、%s", n, item.title), st.bold)
		for _, c := range item.data {
			w.countRow(c, total, st.percent)
		}
		w.row++
	}
}
