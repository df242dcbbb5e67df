package api

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrmonthly/internal/importer"
)

// MergeDone 合并完成事件的数据
type MergeDone struct {
	Result    *importer.RunResult `json:"result"`
	MergedURL string              `json:"mergedUrl"`
	ReportURL string              `json:"reportUrl,omitempty"`
}

// Merge 上传两份花名册并合并（SSE 流式响应）
// POST /api/merge
func (h *Handler) Merge(c *gin.Context) {
	fileA, errA := c.FormFile("fileA")
	fileB, errB := c.FormFile("fileB")
	if errA != nil || errB != nil {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, "需要上传 fileA 与 fileB")
		return
	}

	month, err := strconv.Atoi(c.DefaultPostForm("month", "0"))
	if err != nil || month < 0 || month > 12 {
		errorResponse(c, http.StatusBadRequest, CodeInvalidMonth, "月份参数错误")
		return
	}
	applyMappings := c.DefaultPostForm("applyMappings", "true") == "true"

	requestID := uuid.NewString()
	workDir := filepath.Join(h.uploadDir, requestID)
	if err := os.MkdirAll(workDir, 0755); err != nil {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, "创建上传目录失败")
		return
	}
	defer os.RemoveAll(workDir)

	pathA, err := h.saveUpload(c, fileA, workDir, "A")
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, "保存文件失败")
		return
	}
	pathB, err := h.saveUpload(c, fileB, workDir, "B")
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, "保存文件失败")
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		errorResponse(c, http.StatusInternalServerError, CodeInternal, "不支持流式响应")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := h.coord.Run(c.Request.Context(), importer.RunOptions{
		Month:         month,
		ApplyMappings: applyMappings,
		SourceA:       pathA,
		SourceB:       pathB,
		OutputDir:     filepath.Join(h.outputDir, requestID),
	})

	for event := range events {
		if event.Type == importer.EventDone {
			if result, ok := event.Data.(*importer.RunResult); ok {
				event.Data = h.publish(result)
			}
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			h.log.Warn("encode progress event failed", zap.Error(err))
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

func (h *Handler) saveUpload(c *gin.Context, fh *multipart.FileHeader, dir, prefix string) (string, error) {
	path := filepath.Join(dir, prefix+"_"+filepath.Base(fh.Filename))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		h.log.Warn("save upload failed", zap.String("file", fh.Filename), zap.Error(err))
		return "", err
	}
	return path, nil
}

// publish 为生成的工作簿签发下载令牌
func (h *Handler) publish(result *importer.RunResult) MergeDone {
	done := MergeDone{
		Result:    result,
		MergedURL: "/api/download/" + h.downloads.put(result.MergedPath, downloadTTL),
	}
	if result.ReportPath != "" {
		done.ReportURL = "/api/download/" + h.downloads.put(result.ReportPath, downloadTTL)
	}
	return done
}

// Download 下载生成的工作簿
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		errorResponse(c, http.StatusNotFound, CodeNotFound, "下载链接已失效")
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		errorResponse(c, http.StatusNotFound, CodeNotFound, "文件不存在")
		return
	}

	name := filepath.Base(item.filePath)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)
}
