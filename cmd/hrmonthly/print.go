package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"hrmonthly/internal/importer"
	"hrmonthly/internal/model"
	"hrmonthly/internal/report"
	"hrmonthly/internal/store"
	"hrmonthly/internal/util"
)

func progressPrinter(w io.Writer) func(importer.ProgressEvent) {
	return func(evt importer.ProgressEvent) {
		switch evt.Type {
		case importer.EventError:
			fmt.Fprintf(w, "[错误] %s\n", evt.Message)
		case importer.EventDone:
		default:
			fmt.Fprintf(w, "- %s\n", evt.Message)
		}
	}
}

func printResult(w io.Writer, res *importer.RunResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "处理月份: %d月\n", res.Month)
	fmt.Fprintf(w, "合并文件: %s\n", absPath(res.MergedPath))
	if res.ReportPath != "" {
		fmt.Fprintf(w, "月度报告: %s\n", absPath(res.ReportPath))
	}

	d := res.Diagnostics
	fmt.Fprintf(w, "合并后行数: %d（去除重复 %d 行）\n", d.OutputRows, d.DuplicatesRemoved)
	if d.Normalized {
		fmt.Fprintf(w, "一线销售人员: %d 人\n", d.FrontlineStaffCount)
		if d.ImputedAges > 0 {
			fmt.Fprintf(w, "年龄缺失 %d 人，已按平均年龄 %.1f 填补\n", d.ImputedAges, d.MeanAge)
		}
	}
	for _, m := range d.MissingColumns {
		fmt.Fprintf(w, "注意: %s 缺少列 %v\n", m.Source, m.Columns)
	}
	if res.Summary != nil {
		printSummary(w, *res.Summary)
	}
}

func printSummary(w io.Writer, stats model.SummaryStats) {
	fmt.Fprintf(w, "\n总人数: %d人\n", stats.Total)
	sections := []struct {
		title string
		data  model.Breakdown
	}{
		{"性别结构", stats.Gender},
		{"学历结构", stats.Education},
		{"年龄结构", stats.AgeBand},
		{"用工性质", stats.EmploymentType},
	}
	for _, s := range sections {
		if len(s.data) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", s.title)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, c := range s.data {
			fmt.Fprintf(tw, "  %s\t%d人\t%s\n", c.Label, c.Count, util.FormatPercent(report.Share(c.Count, stats.Total)))
		}
		_ = tw.Flush()
	}
}

func formatRunsList(w io.Writer, runs []*store.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t月份\t状态\t行数\t去重\t创建时间")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%s\n",
			r.ID, r.Month, r.Status, r.TotalRows, r.DuplicatesRemoved, r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	_ = tw.Flush()
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
