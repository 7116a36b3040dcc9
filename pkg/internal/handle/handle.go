// Package handle 提供 HTTP 请求处理器.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
)

// StatusOf 把流水线错误分类映射为 HTTP 状态码.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindCodec, apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError 写出错误响应. 5xx 不回显底层原因，只返回分类与操作名.
func writeError(c *gin.Context, err error) {
	status := StatusOf(err)
	_ = c.Error(err)

	body := gin.H{"kind": apperr.KindOf(err).String()}

	var e *apperr.Error
	if errors.As(err, &e) && e.Op != "" {
		body["op"] = e.Op
	}

	if status < http.StatusInternalServerError {
		body["error"] = err.Error()
	} else {
		body["error"] = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, body)
}
