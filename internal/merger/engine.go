// Package merger 合并两份花名册：按目标列对齐、拼接、规范化、去重
package merger

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"hrmonthly/internal/model"
	"hrmonthly/internal/normalizer"
)

// 来源标签
const (
	SourceA = "文件1"
	SourceB = "文件2"
)

// Engine 合并引擎，可在多个 goroutine 中对不同表并发调用
type Engine struct {
	norm *normalizer.Normalizer
	log  *zap.Logger
}

// NewEngine 创建合并引擎；log 为 nil 时不输出日志
func NewEngine(tables *model.LookupTables, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		norm: normalizer.New(tables),
		log:  log,
	}
}

// Merge 合并两张源表。输入表不会被修改。
// applyNormalization 为 false 时只做对齐、拼接与去重，不插入月份列与派生列。
func (e *Engine) Merge(a, b *model.Table, month int, applyNormalization bool) (*model.MergeResult, error) {
	if a == nil {
		return nil, eris.Wrapf(model.ErrSourceUnavailable, "merge: %s", SourceA)
	}
	if b == nil {
		return nil, eris.Wrapf(model.ErrSourceUnavailable, "merge: %s", SourceB)
	}
	if applyNormalization && (month < 1 || month > 12) {
		return nil, eris.Wrapf(model.ErrInvalidMonth, "merge: month=%d", month)
	}

	targets := e.norm.Tables().TargetColumns
	diag := model.Diagnostics{
		Normalized: applyNormalization,
		SourceRows: map[string]int{SourceA: a.Len(), SourceB: b.Len()},
	}

	ra, ma := ExtractTargetColumns(a, targets, SourceA)
	rb, mb := ExtractTargetColumns(b, targets, SourceB)
	for _, m := range []model.SchemaMismatch{ma, mb} {
		if len(m.Columns) == 0 {
			continue
		}
		diag.MissingColumns = append(diag.MissingColumns, m)
		e.log.Warn("source missing target columns",
			zap.String("source", m.Source), zap.Strings("columns", m.Columns))
	}

	merged := concat(ra, rb)
	if applyNormalization {
		e.normalize(merged, month, &diag)
	}

	diag.DuplicatesRemoved = DropDuplicates(merged)
	diag.OutputRows = merged.Len()
	if diag.DuplicatesRemoved > 0 {
		e.log.Info("duplicate rows removed", zap.Int("rows", diag.DuplicatesRemoved))
	}

	return &model.MergeResult{Table: merged, Diagnostics: diag}, nil
}
