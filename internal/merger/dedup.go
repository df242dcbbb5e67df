package merger

import (
	"strconv"
	"strings"

	"hrmonthly/internal/model"
)

// rowKey 以长度前缀拼接单元格，任意内容都不会产生相同的键
func rowKey(row []string) string {
	var b strings.Builder
	for _, cell := range row {
		b.WriteString(strconv.Itoa(len(cell)))
		b.WriteByte(':')
		b.WriteString(cell)
	}
	return b.String()
}

// DropDuplicates 去除与之前某行完全相同的行，保留首次出现并维持行序，返回去除行数
func DropDuplicates(t *model.Table) int {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]
	removed := 0
	for _, row := range t.Rows {
		key := rowKey(row)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}
	t.Rows = kept
	return removed
}
