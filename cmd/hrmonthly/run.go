package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrmonthly/internal/importer"
	"hrmonthly/internal/util"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "按月份自动处理：合并花名册并生成月报",
	RunE: func(cmd *cobra.Command, _ []string) error {
		printBanner()

		month, _ := cmd.Flags().GetInt("month")
		noMappings, _ := cmd.Flags().GetBool("no-mappings")
		basePath, _ := cmd.Flags().GetString("base-path")
		output, _ := cmd.Flags().GetString("output")
		open, _ := cmd.Flags().GetBool("open")

		if basePath != "" {
			cfg.Files.BasePath = basePath
		}
		if output != "" {
			cfg.Files.OutputDir = output
		}
		if month == 0 {
			month = cfg.Business.DefaultMonth
		}
		if month == 0 {
			month = importer.DefaultMonth(nowFunc())
		}
		applyMappings := cfg.Business.ApplyMappings && !noMappings

		files, err := importer.ResolveMonthlyFiles(cfg.Files, month)
		if err != nil {
			return err
		}

		a, err := newApp(cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("开始自动处理 %d 月份数据...\n", month)
		res, err := importer.Wait(a.coord.Run(cmd.Context(), importer.RunOptions{
			Month:         month,
			ApplyMappings: applyMappings,
			SourceA:       files.SourceA,
			SourceB:       files.SourceB,
			MergedPath:    files.Merged,
			OutputDir:     cfg.Files.OutputDir,
			Now:           nowFunc(),
		}), progressPrinter(os.Stdout))
		if err != nil {
			return err
		}

		printResult(os.Stdout, res)
		if open && res.ReportPath != "" {
			if err := util.OpenFile(res.ReportPath); err != nil {
				zap.L().Warn("open report failed", zap.Error(err))
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntP("month", "m", 0, "处理月份 1-12（默认为上个月）")
	runCmd.Flags().Bool("no-mappings", false, "不应用部门映射与派生字段")
	runCmd.Flags().StringP("base-path", "p", "", "花名册所在目录（覆盖配置）")
	runCmd.Flags().StringP("output", "o", "", "输出目录（覆盖配置）")
	runCmd.Flags().Bool("open", false, "完成后打开月报")
	rootCmd.AddCommand(runCmd)
}
