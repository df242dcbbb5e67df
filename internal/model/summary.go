package model

// Count 单个分类的人数
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Breakdown 按人数降序的分类统计
type Breakdown []Count

// Get 按标签取人数
func (b Breakdown) Get(label string) int {
	for _, c := range b {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

// Sum 合计
func (b Breakdown) Sum() int {
	total := 0
	for _, c := range b {
		total += c.Count
	}
	return total
}

// GroupSummary 一组人员的结构统计
type GroupSummary struct {
	Total     int       `json:"total"`
	Gender    Breakdown `json:"gender"`
	Education Breakdown `json:"education"`
	AgeBand   Breakdown `json:"ageBand"`
}

// SummaryStats 月报统计
type SummaryStats struct {
	GroupSummary
	EmploymentType Breakdown     `json:"employmentType"`
	Department     Breakdown     `json:"department"`
	FrontlineStaff Breakdown     `json:"frontlineStaff"`
	Contract       *GroupSummary `json:"contract,omitempty"`
}
