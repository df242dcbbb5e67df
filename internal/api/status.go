package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrmonthly/internal/store"
)

// LookupsSummary 映射表规模
type LookupsSummary struct {
	DepartmentMappings   int `json:"departmentMappings"`
	SecondaryOrgMappings int `json:"secondaryOrgMappings"`
	FrontlinePositions   int `json:"frontlinePositions"`
	FrontlineDepartments int `json:"frontlineDepartments"`
	SpecialStaff         int `json:"specialStaff"`
	EducationMappings    int `json:"educationMappings"`
	TargetColumns        int `json:"targetColumns"`
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version        string         `json:"version"`
	Lookups        LookupsSummary `json:"lookups"`
	HistoryEnabled bool           `json:"historyEnabled"`
	LastRun        *store.Run     `json:"lastRun,omitempty"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Version: h.version,
		Lookups: LookupsSummary{
			DepartmentMappings:   len(h.tables.DepartmentMapping),
			SecondaryOrgMappings: len(h.tables.SecondaryOrgMapping),
			FrontlinePositions:   len(h.tables.FrontlinePositions),
			FrontlineDepartments: len(h.tables.FrontlineDepartments),
			SpecialStaff:         len(h.tables.SpecialStaff),
			EducationMappings:    len(h.tables.EducationMapping),
			TargetColumns:        len(h.tables.TargetColumns),
		},
		HistoryEnabled: h.store != nil,
	}

	if h.store != nil {
		runs, err := h.store.ListRuns(1)
		if err != nil {
			h.log.Warn("list runs failed", zap.Error(err))
		} else if len(runs) > 0 {
			resp.LastRun = runs[0]
		}
	}

	success(c, resp)
}

// GetLookups 返回当前映射表
// GET /api/lookups
func (h *Handler) GetLookups(c *gin.Context) {
	success(c, h.tables)
}
