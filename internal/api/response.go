package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrmonthly/internal/model"
	"hrmonthly/internal/store"
)

// 业务错误码
const (
	CodeOK            = 0
	CodeBadRequest    = 1001
	CodeInvalidMonth  = 1002
	CodeSourceMissing = 2001
	CodeInvalidLookup = 2002
	CodeNotFound      = 4004
	CodeInternal      = 5000
	CodeStoreDisabled = 5001
)

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}

// errorCode 将错误映射为 HTTP 状态与业务码
func errorCode(err error) (int, int) {
	switch {
	case errors.Is(err, model.ErrInvalidMonth):
		return http.StatusBadRequest, CodeInvalidMonth
	case errors.Is(err, model.ErrSourceUnavailable):
		return http.StatusBadRequest, CodeSourceMissing
	case errors.Is(err, model.ErrInvalidLookup):
		return http.StatusInternalServerError, CodeInvalidLookup
	case errors.Is(err, store.ErrRunNotFound):
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func fail(c *gin.Context, err error) {
	status, code := errorCode(err)
	errorResponse(c, status, code, err.Error())
}
