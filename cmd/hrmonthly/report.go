package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hrmonthly/internal/importer"
)

// nowFunc 当前时间，测试中可替换
var nowFunc = time.Now

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "基于已合并的花名册生成月报",
	RunE: func(cmd *cobra.Command, _ []string) error {
		merged, _ := cmd.Flags().GetString("merged")
		month, _ := cmd.Flags().GetInt("month")
		year, _ := cmd.Flags().GetInt("year")
		output, _ := cmd.Flags().GetString("output")

		now := nowFunc()
		if month == 0 {
			month = cfg.Business.DefaultMonth
		}
		if month == 0 {
			month = importer.DefaultMonth(now)
		}
		if year == 0 {
			year = importer.ReportPeriod(now, month)
		}

		a, err := newApp(cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		path, stats, err := a.coord.Report(merged, year, month, output)
		if err != nil {
			return err
		}
		fmt.Printf("月度报告: %s\n", absPath(path))
		printSummary(os.Stdout, *stats)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("merged", "", "已合并的花名册文件")
	reportCmd.Flags().IntP("month", "m", 0, "月份 1-12（默认为上个月）")
	reportCmd.Flags().Int("year", 0, "年份（默认按月份推断）")
	reportCmd.Flags().StringP("output", "o", "", "输出目录（默认与合并文件相同）")
	_ = reportCmd.MarkFlagRequired("merged")
	rootCmd.AddCommand(reportCmd)
}
