package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/context"
)

// IdentityMiddleware 从上游代理注入的身份头取出上传者并写入请求 context.
//   - 按 conf.Headers 的顺序取第一个非空值
//   - SkipPaths 前缀下的请求不要求身份
//   - DevAllowQuery 为 true 时允许 ?uploader= 兜底.
func IdentityMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Uploader(c, conf)
		if id != "" {
			c.Request = c.Request.WithContext(context.WithUploader(c.Request.Context(), id))
			c.Next()

			return
		}

		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing uploader identity"})
	}
}

// Uploader 按配置解析请求的上传者标识，找不到时返回空串.
func Uploader(c *gin.Context, conf configs.AuthConfig) string {
	for _, h := range conf.Headers {
		if v := strings.TrimSpace(c.GetHeader(h)); v != "" {
			return v
		}
	}

	if conf.DevAllowQuery {
		return strings.TrimSpace(c.Query("uploader"))
	}

	return ""
}

func isSkippedPath(path string, skips []string) bool {
	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
