// Package router 把请求处理器绑定到 gin 路由组.
package router

import (
	"github.com/gin-gonic/gin"
)

// ReleaseHandlers 由应用层注入的发行处理器. router 包只负责绑定路径，实现由 pkg/internal/handle 提供.
type ReleaseHandlers interface {
	Upload() gin.HandlerFunc
}

// RegisterReleaseRoutes 绑定发行路由：
//
//	POST /upload -> Upload
func RegisterReleaseRoutes(g *gin.RouterGroup, handlers ReleaseHandlers) {
	g.POST("/upload", handlers.Upload())
}
