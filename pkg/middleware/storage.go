package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/context"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器注入请求 context.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
