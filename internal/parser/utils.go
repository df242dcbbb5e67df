package parser

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	monthRe = regexp.MustCompile(`(?:(\d{4})年)?0?(\d{1,2})月`)
)

// NormalizeColumnName 规范化列名：全角转半角（NFKC）、去除所有空白
func NormalizeColumnName(name string) string {
	name = norm.NFKC.String(name)
	name = strings.TrimSpace(name)
	return spaceRe.ReplaceAllString(name, "")
}

// NormalizeColumnNames 批量规范化列名
func NormalizeColumnNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumnName(n)
	}
	return out
}

// ExtractMonth 从文件名/标题中提取月份
// 支持格式: "3月花名册" / "2025年03月人员" / "2025年3月"
func ExtractMonth(text string) (month int, found bool) {
	matches := monthRe.FindStringSubmatch(text)
	if len(matches) < 3 {
		return 0, false
	}
	m, err := strconv.Atoi(matches[2])
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

// CountMatches 统计 columns 中出现的目标列个数（按规范化后的名称比较）
func CountMatches(columns, targets []string) int {
	want := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		want[NormalizeColumnName(t)] = struct{}{}
	}
	n := 0
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		c = NormalizeColumnName(c)
		if _, ok := want[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		n++
	}
	return n
}

// IsBlankRow 整行是否为空
func IsBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
