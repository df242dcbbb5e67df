// Package importer 串联月度流程：解析文件、读取、合并、写出、生成月报、记录运行
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hrmonthly/internal/merger"
	"hrmonthly/internal/model"
	"hrmonthly/internal/parser"
	"hrmonthly/internal/report"
	"hrmonthly/internal/service/excel"
	"hrmonthly/internal/store"
)

// 进度事件类型
const (
	EventStart  = "start"
	EventInfo   = "info"
	EventMerged = "merged"
	EventReport = "report"
	EventDone   = "done"
	EventError  = "error"
)

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Err       error       `json:"-"`
}

// RunOptions 运行选项
type RunOptions struct {
	Month         int // 0 表示从文件名识别，识别不到时取上一个自然月
	ApplyMappings bool
	SourceA       string
	SourceB       string
	MergedPath    string // 为空时写入 OutputDir
	OutputDir     string
	SkipReport    bool
	Now           time.Time // 为零值时取当前时间
}

// RunResult 运行结果
type RunResult struct {
	RunID       string                 `json:"runId"`
	Year        int                    `json:"year"`
	Month       int                    `json:"month"`
	MergedPath  string                 `json:"mergedPath"`
	ReportPath  string                 `json:"reportPath,omitempty"`
	Sources     []*parser.SourceReport `json:"sources"`
	Diagnostics model.Diagnostics      `json:"diagnostics"`
	Summary     *model.SummaryStats    `json:"summary,omitempty"`
	Duration    time.Duration          `json:"duration"`
}

// Coordinator 月度流程协调器
type Coordinator struct {
	engine *merger.Engine
	reader *excel.Reader
	store  *store.Store
	log    *zap.Logger
}

// NewCoordinator 创建协调器；st 为 nil 时不记录运行历史
func NewCoordinator(engine *merger.Engine, reader *excel.Reader, st *store.Store, log *zap.Logger) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		engine: engine,
		reader: reader,
		store:  st,
		log:    log,
	}
}

// Run 执行流程，返回进度通道；通道在流程结束后关闭
func (c *Coordinator) Run(ctx context.Context, opts RunOptions) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 16)

	go func() {
		defer close(ch)
		c.run(ctx, opts, ch)
	}()

	return ch
}

// Wait 消费进度通道直至结束，返回 done 事件的结果或 error 事件的错误
func Wait(ch <-chan ProgressEvent, onEvent func(ProgressEvent)) (*RunResult, error) {
	var (
		result *RunResult
		err    error
	)
	for evt := range ch {
		if onEvent != nil {
			onEvent(evt)
		}
		switch evt.Type {
		case EventDone:
			result, _ = evt.Data.(*RunResult)
		case EventError:
			err = evt.Err
			if err == nil {
				err = eris.New(evt.Message)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, eris.New("importer: run ended without result")
	}
	return result, nil
}

func (c *Coordinator) run(ctx context.Context, opts RunOptions, ch chan<- ProgressEvent) {
	start := time.Now()
	now := opts.Now
	if now.IsZero() {
		now = start
	}
	month := opts.Month
	if month == 0 {
		month = inferMonth(now, opts.SourceA, opts.SourceB)
	}

	result := &RunResult{
		RunID: uuid.NewString(),
		Year:  ReportPeriod(now, month),
		Month: month,
	}

	c.send(ctx, ch, ProgressEvent{
		Type:    EventStart,
		Message: fmt.Sprintf("开始处理 %d 月份数据", month),
		Data: map[string]interface{}{
			"runId":         result.RunID,
			"month":         month,
			"applyMappings": opts.ApplyMappings,
			"sourceA":       filepath.Base(opts.SourceA),
			"sourceB":       filepath.Base(opts.SourceB),
		},
	})

	if c.store != nil {
		if err := c.store.CreateRun(result.RunID, month, opts.ApplyMappings, opts.SourceA, opts.SourceB); err != nil {
			c.log.Warn("record run failed", zap.Error(err))
		}
	}

	if err := c.execute(ctx, opts, result, ch); err != nil {
		c.log.Error("run failed", zap.String("run", result.RunID), zap.Error(err))
		if c.store != nil {
			if ferr := c.store.FailRun(result.RunID, err.Error()); ferr != nil {
				c.log.Warn("record run failure failed", zap.Error(ferr))
			}
		}
		c.send(ctx, ch, ProgressEvent{
			Type:    EventError,
			Message: err.Error(),
			Data:    map[string]string{"runId": result.RunID},
			Err:     err,
		})
		return
	}

	result.Duration = time.Since(start)
	if c.store != nil {
		out := store.RunOutcome{
			MergedPath:        result.MergedPath,
			ReportPath:        result.ReportPath,
			TotalRows:         result.Diagnostics.OutputRows,
			DuplicatesRemoved: result.Diagnostics.DuplicatesRemoved,
			FrontlineCount:    result.Diagnostics.FrontlineStaffCount,
			MissingColumns:    result.Diagnostics.MissingBySource(),
		}
		if err := c.store.CompleteRun(result.RunID, out); err != nil {
			c.log.Warn("record run completion failed", zap.Error(err))
		}
	}

	c.log.Info("run completed",
		zap.String("run", result.RunID),
		zap.Int("month", month),
		zap.Duration("duration", result.Duration))
	c.send(ctx, ch, ProgressEvent{
		Type:    EventDone,
		Message: "处理完成",
		Data:    result,
	})
}

func (c *Coordinator) execute(ctx context.Context, opts RunOptions, result *RunResult, ch chan<- ProgressEvent) error {
	if result.Month < 1 || result.Month > 12 {
		return eris.Wrapf(model.ErrInvalidMonth, "run: month=%d", result.Month)
	}

	tables, reports, err := c.readSources(ctx, opts.SourceA, opts.SourceB)
	if err != nil {
		return err
	}
	result.Sources = reports
	for _, rep := range reports {
		c.send(ctx, ch, ProgressEvent{
			Type:    EventInfo,
			Message: fmt.Sprintf("%s 读取 %d 行（表头第 %d 行）", rep.Label, rep.Rows, rep.HeaderRow),
			Data:    rep,
		})
	}

	merged, err := c.engine.Merge(tables[0], tables[1], result.Month, opts.ApplyMappings)
	if err != nil {
		return err
	}
	result.Diagnostics = merged.Diagnostics
	for _, m := range merged.Diagnostics.MissingColumns {
		c.send(ctx, ch, ProgressEvent{
			Type:    EventInfo,
			Message: fmt.Sprintf("%s 缺少列: %v", m.Source, m.Columns),
			Data:    m,
		})
	}
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "run: cancelled")
	}

	mergedPath := opts.MergedPath
	if mergedPath == "" {
		mergedPath = filepath.Join(opts.OutputDir, fmt.Sprintf("合并花名册_%d月.xlsx", result.Month))
	}
	if err := os.MkdirAll(filepath.Dir(mergedPath), 0755); err != nil {
		return eris.Wrapf(err, "run: create output directory for %s", mergedPath)
	}
	if err := excel.SaveTable(merged.Table, mergedPath); err != nil {
		return err
	}
	result.MergedPath = mergedPath
	c.send(ctx, ch, ProgressEvent{
		Type:    EventMerged,
		Message: fmt.Sprintf("合并完成: %d 行，去除重复 %d 行", merged.Table.Len(), merged.Diagnostics.DuplicatesRemoved),
		Data:    merged.Diagnostics,
	})

	if opts.SkipReport {
		return nil
	}

	stats := report.Summarize(merged.Table)
	result.Summary = &stats
	reportPath, err := c.exportReport(stats, result.Year, result.Month, reportDir(opts, mergedPath))
	if err != nil {
		return err
	}
	result.ReportPath = reportPath
	c.send(ctx, ch, ProgressEvent{
		Type:    EventReport,
		Message: fmt.Sprintf("月报已生成: %s", filepath.Base(reportPath)),
		Data:    map[string]string{"path": reportPath},
	})
	return nil
}

// Report 基于已合并的花名册生成月报，返回月报路径
func (c *Coordinator) Report(mergedPath string, year, month int, outputDir string) (string, *model.SummaryStats, error) {
	if month < 1 || month > 12 {
		return "", nil, eris.Wrapf(model.ErrInvalidMonth, "report: month=%d", month)
	}
	table, _, err := c.reader.ReadFile(mergedPath, "合并文件")
	if err != nil {
		return "", nil, err
	}
	stats := report.Summarize(table)
	if outputDir == "" {
		outputDir = filepath.Dir(mergedPath)
	}
	path, err := c.exportReport(stats, year, month, outputDir)
	if err != nil {
		return "", nil, err
	}
	return path, &stats, nil
}

func (c *Coordinator) exportReport(stats model.SummaryStats, year, month int, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", eris.Wrapf(err, "report: create %s", dir)
	}
	path, err := excel.NewMonthReportExporter(year, month).Save(stats, dir)
	if err != nil {
		return "", err
	}
	c.log.Info("report exported", zap.String("path", path), zap.Int("total", stats.Total))
	return path, nil
}

// readSources 并发读取两个来源文件
func (c *Coordinator) readSources(ctx context.Context, pathA, pathB string) ([2]*model.Table, []*parser.SourceReport, error) {
	var (
		tables  [2]*model.Table
		reports = make([]*parser.SourceReport, 2)
	)

	g, _ := errgroup.WithContext(ctx)
	for i, src := range []struct{ label, path string }{
		{merger.SourceA, pathA},
		{merger.SourceB, pathB},
	} {
		i, src := i, src
		g.Go(func() error {
			t, rep, err := c.reader.ReadFile(src.path, src.label)
			if err != nil {
				return err
			}
			tables[i] = t
			reports[i] = rep
			c.log.Debug("source read",
				zap.String("source", src.label),
				zap.String("file", rep.Filename),
				zap.Int("rows", rep.Rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tables, nil, err
	}
	return tables, reports, nil
}

// inferMonth 优先从来源文件名中识别月份，否则取上一个自然月
func inferMonth(now time.Time, paths ...string) int {
	for _, p := range paths {
		if m, ok := parser.ExtractMonth(filepath.Base(p)); ok {
			return m
		}
	}
	return DefaultMonth(now)
}

func reportDir(opts RunOptions, mergedPath string) string {
	if opts.OutputDir != "" {
		return opts.OutputDir
	}
	return filepath.Dir(mergedPath)
}

func (c *Coordinator) send(ctx context.Context, ch chan<- ProgressEvent, evt ProgressEvent) {
	evt.Timestamp = time.Now()
	select {
	case ch <- evt:
	case <-ctx.Done():
	}
}
