package importer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrmonthly/internal/lookup"
	"hrmonthly/internal/merger"
	"hrmonthly/internal/model"
	"hrmonthly/internal/service/excel"
	"hrmonthly/internal/store"
)

func writeRoster(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	title := []interface{}{"员工花名册"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &title))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
}

func newTestCoordinator(t *testing.T, st *store.Store) *Coordinator {
	t.Helper()
	tables, err := lookup.Default()
	require.NoError(t, err)
	reader := excel.NewReader(tables.TargetColumns, excel.ReaderOptions{})
	return NewCoordinator(merger.NewEngine(tables, nil), reader, st, nil)
}

func writeSources(t *testing.T, dir string) (string, string) {
	t.Helper()
	header := []interface{}{"部门/区县名称", "BU/营服名称", "岗位名称", "姓名", "性别", "年龄", "最高学历", "用工性质"}
	a := filepath.Join(dir, "a.xlsx")
	b := filepath.Join(dir, "b.xlsx")
	writeRoster(t, a, [][]interface{}{
		header,
		{"人力资源部", "", "人事专员", "张三", "男", 30, "本科", "合同制"},
		{"市场经营部", "", "销售代表", "李四", "女", 26, "大专", "合同制"},
	})
	writeRoster(t, b, [][]interface{}{
		header,
		{"人力资源部", "", "人事专员", "张三", "男", 30, "本科", "合同制"},
		{"财务部", "", "会计", "王五", "男", "", "硕士", "劳务派遣"},
	})
	return a, b
}

func TestCoordinator_RunRecordsHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "hrmonthly.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	a, b := writeSources(t, dir)
	c := newTestCoordinator(t, st)

	var types []string
	result, err := Wait(c.Run(context.Background(), RunOptions{
		Month:         3,
		ApplyMappings: true,
		SourceA:       a,
		SourceB:       b,
		OutputDir:     filepath.Join(dir, "output"),
		Now:           time.Date(2024, time.April, 2, 0, 0, 0, 0, time.Local),
	}), func(evt ProgressEvent) { types = append(types, evt.Type) })
	require.NoError(t, err)

	assert.Equal(t, EventStart, types[0])
	assert.Equal(t, EventDone, types[len(types)-1])
	assert.Contains(t, types, EventMerged)
	assert.Contains(t, types, EventReport)

	assert.Equal(t, 2024, result.Year)
	assert.Equal(t, 1, result.Diagnostics.DuplicatesRemoved)
	assert.Equal(t, 3, result.Diagnostics.OutputRows)
	assert.Equal(t, "用工月报_202403.xlsx", filepath.Base(result.ReportPath))
	require.NotNil(t, result.Summary)
	assert.Equal(t, 3, result.Summary.Total)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, 2, result.Sources[0].HeaderRow)

	merged, _, err := excel.NewReader(nil, excel.ReaderOptions{HeaderRow: 1}).ReadFile(result.MergedPath, "合并")
	require.NoError(t, err)
	assert.Equal(t, model.ColMonth, merged.Columns[0])
	assert.Equal(t, "3", merged.Value(0, model.ColMonth))
	assert.Equal(t, "市场部", merged.Value(1, model.ColDepartment))
	assert.Equal(t, model.Yes, merged.Value(1, model.ColFrontlineStaff))

	run, err := st.GetRun(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, store.RunCompleted, run.Status)
	assert.Equal(t, 3, run.TotalRows)
	assert.Equal(t, result.ReportPath, run.ReportPath)
}

func TestCoordinator_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := store.New(filepath.Join(dir, "hrmonthly.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	a, _ := writeSources(t, dir)
	c := newTestCoordinator(t, st)

	var runID string
	_, err = Wait(c.Run(context.Background(), RunOptions{
		Month:     3,
		SourceA:   a,
		SourceB:   filepath.Join(dir, "missing.xlsx"),
		OutputDir: dir,
	}), func(evt ProgressEvent) {
		if evt.Type == EventStart {
			runID, _ = evt.Data.(map[string]interface{})["runId"].(string)
		}
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSourceUnavailable))

	run, err := st.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, store.RunFailed, run.Status)
}

func TestCoordinator_RawMergeWithoutStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, b := writeSources(t, dir)
	c := newTestCoordinator(t, nil)

	out := filepath.Join(dir, "merged", "raw.xlsx")
	result, err := Wait(c.Run(context.Background(), RunOptions{
		Month:      3,
		SourceA:    a,
		SourceB:    b,
		MergedPath: out,
		SkipReport: true,
	}), nil)
	require.NoError(t, err)
	assert.Equal(t, out, result.MergedPath)
	assert.Empty(t, result.ReportPath)
	assert.False(t, result.Diagnostics.Normalized)
}

func TestCoordinator_Report(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, b := writeSources(t, dir)
	c := newTestCoordinator(t, nil)

	result, err := Wait(c.Run(context.Background(), RunOptions{
		Month: 3, ApplyMappings: true, SourceA: a, SourceB: b, OutputDir: dir, SkipReport: true,
	}), nil)
	require.NoError(t, err)

	path, stats, err := c.Report(result.MergedPath, 2024, 3, filepath.Join(dir, "reports"))
	require.NoError(t, err)
	assert.Equal(t, "用工月报_202403.xlsx", filepath.Base(path))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Contract.Total)
}

func TestInferMonth(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 3, inferMonth(now, "/in/花名册A_3月.xlsx", "/in/b.xlsx"))
	assert.Equal(t, 11, inferMonth(now, "/in/a.xlsx", "/in/2023年11月员工.xlsx"))
	assert.Equal(t, 12, inferMonth(now, "/in/a.xlsx", "/in/b.xlsx"))
}
