package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/scheduler"
)

const schedulerKey = "torrentvault.scheduler"

// SchedulerMiddleware 将 scheduler 挂到 gin.Context 上.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(schedulerKey, sched)
		c.Next()
	}
}

// GetScheduler 取出 scheduler，未注入时返回 nil.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	v, ok := c.Get(schedulerKey)
	if !ok {
		return nil
	}

	sched, _ := v.(*scheduler.Scheduler)

	return sched
}
