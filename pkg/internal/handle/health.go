package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/torrentvault/pkg/context"
)

const timeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func health(c *gin.Context, component string, p pinger, ok bool) {
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": component, "status": "unhealthy", "error": component + " not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": component, "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": component, "status": "ok"})
}

// HealthDB 数据库健康检查.
//
//	@Summary		db 健康检查
//	@Tags			健康检查
//	@Produce		json
//	@Success		200	{object}	map[string]string	"组件可用"
//	@Failure		503	{object}	map[string]string	"组件不可用"
//	@Router			/api/v1/health/db [get]
func HealthDB(c *gin.Context) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	health(c, "db", dbc, dbc != nil && dbc.DB != nil)
}

// HealthBlob 种子文件存储健康检查.
//
//	@Summary		blob 健康检查
//	@Tags			健康检查
//	@Produce		json
//	@Success		200	{object}	map[string]string	"组件可用"
//	@Failure		503	{object}	map[string]string	"组件不可用"
//	@Router			/api/v1/health/blob [get]
func HealthBlob(c *gin.Context) {
	store := ctxPkg.GetBlobStore(c.Request.Context())
	health(c, "blob", store, store != nil)
}

// HealthMQ 消息队列健康检查. 事件关闭时客户端为空，视为不健康.
//
//	@Summary		mq 健康检查
//	@Tags			健康检查
//	@Produce		json
//	@Success		200	{object}	map[string]string	"组件可用"
//	@Failure		503	{object}	map[string]string	"组件不可用"
//	@Router			/api/v1/health/mq [get]
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	health(c, "mq", mqc, mqc != nil)
}
