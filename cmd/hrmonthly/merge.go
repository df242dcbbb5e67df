package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hrmonthly/internal/importer"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "合并两个指定路径的花名册",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fileA, _ := cmd.Flags().GetString("a")
		fileB, _ := cmd.Flags().GetString("b")
		month, _ := cmd.Flags().GetInt("month")
		noMappings, _ := cmd.Flags().GetBool("no-mappings")
		out, _ := cmd.Flags().GetString("out")

		if month == 0 {
			month = cfg.Business.DefaultMonth
		}
		if out == "" {
			out = "merged_data.xlsx"
		}

		a, err := newApp(cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := importer.Wait(a.coord.Run(cmd.Context(), importer.RunOptions{
			Month:         month,
			ApplyMappings: cfg.Business.ApplyMappings && !noMappings,
			SourceA:       fileA,
			SourceB:       fileB,
			MergedPath:    out,
			OutputDir:     filepath.Dir(out),
			SkipReport:    true,
			Now:           nowFunc(),
		}), progressPrinter(os.Stdout))
		if err != nil {
			return err
		}
		printResult(os.Stdout, res)
		return nil
	},
}

func init() {
	mergeCmd.Flags().String("a", "", "第一个花名册文件")
	mergeCmd.Flags().String("b", "", "第二个花名册文件")
	mergeCmd.Flags().IntP("month", "m", 0, "月份 1-12（默认为上个月）")
	mergeCmd.Flags().Bool("no-mappings", false, "不应用部门映射与派生字段")
	mergeCmd.Flags().String("out", "", "输出文件（默认 merged_data.xlsx）")
	_ = mergeCmd.MarkFlagRequired("a")
	_ = mergeCmd.MarkFlagRequired("b")
	rootCmd.AddCommand(mergeCmd)
}
