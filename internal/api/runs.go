package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListRuns 运行历史
// GET /api/runs?limit=20
func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, http.StatusServiceUnavailable, CodeStoreDisabled, "运行历史不可用")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, "limit 参数错误")
		return
	}

	runs, err := h.store.ListRuns(limit)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, runs)
}

// GetRun 查询单次运行
// GET /api/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, http.StatusServiceUnavailable, CodeStoreDisabled, "运行历史不可用")
		return
	}

	run, err := h.store.GetRun(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, run)
}
