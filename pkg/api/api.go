// Package api 定义对外 HTTP 接口的路由组.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/internal/router"
)

// Prefix API 路由前缀.
const Prefix = "/api/v1"

// RegisterGroup 在 engine 上注册 /api/v1 下的全部路由.
func RegisterGroup(e *gin.Engine, releases router.ReleaseHandlers) *gin.RouterGroup {
	v1 := e.Group(Prefix)

	router.RegisterReleaseRoutes(v1, releases)
	router.RegisterHealthCheckRoute(v1)
	router.RegisterSchedulerRoutes(v1)

	return v1
}
