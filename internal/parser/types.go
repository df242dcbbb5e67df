package parser

import "time"

// HeaderRecognitionResult 表头识别结果
type HeaderRecognitionResult struct {
	RowIndex   int     `json:"rowIndex"`   // 表头所在行（从 0 开始），空表为 -1
	Matched    int     `json:"matched"`    // 命中的目标列数
	Confidence float64 `json:"confidence"` // 置信度 0-1
	Fallback   bool    `json:"fallback"`   // 未命中，使用了默认表头行
}

// SourceReport 单个来源文件的读取报告
type SourceReport struct {
	Label     string        `json:"label"`
	Filename  string        `json:"filename"`
	SheetName string        `json:"sheetName"`
	HeaderRow int           `json:"headerRow"` // 从 1 开始，与 Excel 行号一致
	Rows      int           `json:"rows"`
	Columns   []string      `json:"columns"`
	Duration  time.Duration `json:"duration"`
}
