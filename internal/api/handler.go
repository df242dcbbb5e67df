// Package api 提供月报合并的 HTTP 接口
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrmonthly/internal/importer"
	"hrmonthly/internal/model"
	"hrmonthly/internal/store"
)

// downloadTTL 下载链接有效期
const downloadTTL = 30 * time.Minute

// Options 处理器依赖
type Options struct {
	Version     string
	Tables      *model.LookupTables
	Coordinator *importer.Coordinator
	Store       *store.Store // 可为 nil，此时运行历史接口不可用
	UploadDir   string
	OutputDir   string
	Logger      *zap.Logger
}

// Handler API 处理器
type Handler struct {
	version   string
	tables    *model.LookupTables
	coord     *importer.Coordinator
	store     *store.Store
	uploadDir string
	outputDir string
	downloads *downloadStore
	log       *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		version:   opts.Version,
		tables:    opts.Tables,
		coord:     opts.Coordinator,
		store:     opts.Store,
		uploadDir: opts.UploadDir,
		outputDir: opts.OutputDir,
		downloads: newDownloadStore(),
		log:       log,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/lookups", h.GetLookups)

	// 合并（SSE 进度）
	router.POST("/merge", h.Merge)

	// 运行历史
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)

	// 下载生成的工作簿
	router.GET("/download/:token", h.Download)
}
