package model

// Table 内存中的二维表（列名 + 行），单元格统一按字符串保存，空串表示缺失
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable 创建空表
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: [][]string{}}
}

// Len 行数
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index 返回列位置，不存在返回 -1
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Has 是否包含列
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// AddRow 追加一行，长度不足时补空串，超出部分截断
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Value 读取单元格；列不存在或行过短时返回空串
func (t *Table) Value(row int, column string) string {
	idx := t.Index(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// Set 写入单元格，列必须已存在
func (t *Table) Set(row int, column string, value string) bool {
	idx := t.Index(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return false
	}
	t.Rows[row][idx] = value
	return true
}

// ColumnValues 返回整列（按行序）
func (t *Table) ColumnValues(column string) []string {
	idx := t.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// InsertColumn 在 pos 位置插入常量列
func (t *Table) InsertColumn(pos int, name, value string) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(t.Columns) {
		pos = len(t.Columns)
	}
	t.Columns = insertAt(t.Columns, pos, name)
	for i, row := range t.Rows {
		t.Rows[i] = insertAt(row, pos, value)
	}
}

// AppendColumn 追加派生列，逐行计算值；列已存在时覆盖
func (t *Table) AppendColumn(name string, derive func(row int) string) {
	idx := t.Index(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		idx = len(t.Columns) - 1
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
	for i := range t.Rows {
		t.Rows[i][idx] = derive(i)
	}
}

// Clone 深拷贝
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := NewTable(t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		out.Rows[i] = r
	}
	return out
}

func insertAt(s []string, pos int, v string) []string {
	s = append(s, "")
	copy(s[pos+1:], s[pos:])
	s[pos] = v
	return s
}
