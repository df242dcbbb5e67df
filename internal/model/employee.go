package model

// 员工花名册的规范列名
const (
	ColMonth          = "月份"
	ColDepartment     = "部门/区县名称"
	ColSecondaryOrg   = "BU/营服名称"
	ColPosition       = "岗位名称"
	ColName           = "姓名"
	ColGender         = "性别"
	ColAge            = "年龄"
	ColEducation      = "最高学历"
	ColEmploymentType = "用工性质"

	// 规范化后追加的派生列
	ColFrontlineDepartment = "是否一线"
	ColFrontlineStaff      = "是否一线销售人员"
	ColAgeBand             = "年龄段"
	ColEducationGroup      = "学历分组"
)

// 是/否 枚举
const (
	Yes = "是"
	No  = "否"
)

// 年龄段
const (
	AgeBandUnknown = "未知"
	AgeBandUnder30 = "30岁以下"
	AgeBand30To40  = "30-40岁"
	AgeBand40To50  = "40-50岁"
	AgeBandOver50  = "50岁以上"
)

// EmploymentContract 合同制用工
const EmploymentContract = "合同制"
