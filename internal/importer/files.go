package importer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"hrmonthly/internal/config"
	"hrmonthly/internal/merger"
	"hrmonthly/internal/model"
)

// MonthlyFiles 某月的输入与输出文件路径
type MonthlyFiles struct {
	SourceA string `json:"sourceA"`
	SourceB string `json:"sourceB"`
	Merged  string `json:"merged"`
}

// ResolveMonthlyFiles 按文件名模板解析月份文件路径，并确认两个来源文件存在
func ResolveMonthlyFiles(files config.FilesConfig, month int) (MonthlyFiles, error) {
	if month < 1 || month > 12 {
		return MonthlyFiles{}, eris.Wrapf(model.ErrInvalidMonth, "resolve: month=%d", month)
	}

	out := MonthlyFiles{
		SourceA: filepath.Join(files.BasePath, config.FileName(files.SourceA, month)),
		SourceB: filepath.Join(files.BasePath, config.FileName(files.SourceB, month)),
		Merged:  filepath.Join(files.OutputDir, config.FileName(files.Merged, month)),
	}

	for _, src := range []struct{ label, path string }{
		{merger.SourceA, out.SourceA},
		{merger.SourceB, out.SourceB},
	} {
		info, err := os.Stat(src.path)
		if err != nil {
			return out, eris.Wrapf(model.ErrSourceUnavailable, "%s: %s", src.label, src.path)
		}
		if info.IsDir() {
			return out, eris.Wrapf(model.ErrSourceUnavailable, "%s: %s is a directory", src.label, src.path)
		}
	}
	return out, nil
}

// DefaultMonth 默认处理上一个自然月，1 月时为 12
func DefaultMonth(now time.Time) int {
	if now.Month() == time.January {
		return 12
	}
	return int(now.Month()) - 1
}

// ReportPeriod 月报所属年份：month 晚于当前月时视为上一年
func ReportPeriod(now time.Time, month int) int {
	if month > int(now.Month()) {
		return now.Year() - 1
	}
	return now.Year()
}
