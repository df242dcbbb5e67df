package parser

// HeaderLocator 在工作表前若干行中定位表头行。
// 花名册导出时首行常为标题，表头位置不固定，按目标列命中数判定。
type HeaderLocator struct {
	targets     []string
	scanRows    int
	fallbackRow int
}

// NewHeaderLocator 创建表头定位器
// scanRows: 最多扫描的行数；fallbackRow: 无命中时使用的表头行（从 1 开始）
func NewHeaderLocator(targets []string, scanRows, fallbackRow int) *HeaderLocator {
	if scanRows <= 0 {
		scanRows = 10
	}
	if fallbackRow <= 0 {
		fallbackRow = 1
	}
	return &HeaderLocator{
		targets:     targets,
		scanRows:    scanRows,
		fallbackRow: fallbackRow,
	}
}

// Locate 返回表头行的下标（从 0 开始）及命中置信度 0-1
func (l *HeaderLocator) Locate(rows [][]string) HeaderRecognitionResult {
	best := HeaderRecognitionResult{RowIndex: -1}

	limit := l.scanRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		n := CountMatches(rows[i], l.targets)
		if n > best.Matched {
			best = HeaderRecognitionResult{RowIndex: i, Matched: n}
		}
	}

	if best.RowIndex < 0 {
		idx := l.fallbackRow - 1
		if idx >= len(rows) {
			idx = len(rows) - 1
		}
		return HeaderRecognitionResult{RowIndex: idx, Fallback: true}
	}
	if len(l.targets) > 0 {
		best.Confidence = float64(best.Matched) / float64(len(l.targets))
	}
	return best
}
