package model

// SchemaMismatch 某个来源缺少的目标列（提示性，不中断合并）
type SchemaMismatch struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns"`
}

// Diagnostics 单次合并的结构化诊断信息
type Diagnostics struct {
	MissingColumns      []SchemaMismatch `json:"missingColumns,omitempty"`
	SourceRows          map[string]int   `json:"sourceRows"`
	OutputRows          int              `json:"outputRows"`
	DuplicatesRemoved   int              `json:"duplicatesRemoved"`
	FrontlineStaffCount int              `json:"frontlineStaffCount"`
	ImputedAges         int              `json:"imputedAges"`
	MeanAge             float64          `json:"meanAge,omitempty"`
	Normalized          bool             `json:"normalized"`
}

// MissingBySource 按来源汇总缺失列
func (d Diagnostics) MissingBySource() map[string][]string {
	out := make(map[string][]string, len(d.MissingColumns))
	for _, m := range d.MissingColumns {
		out[m.Source] = append(out[m.Source], m.Columns...)
	}
	return out
}

// MergeResult 合并输出
type MergeResult struct {
	Table       *Table      `json:"table"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
