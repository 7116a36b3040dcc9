package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/torrentvault/pkg/middleware"
	"github.com/yeisme/torrentvault/pkg/scheduler"
)

// JobsResponse 任务列表响应.
type JobsResponse struct {
	Jobs []scheduler.JobInfo `json:"jobs"`
}

// SchedulerJobs 返回所有调度器任务信息.
//
//	@Summary		列出定时任务
//	@Tags			调度器
//	@Produce		json
//	@Success		200	{object}	handle.JobsResponse	"任务列表"
//	@Failure		503	{object}	map[string]string	"调度器未运行"
//	@Router			/api/v1/scheduler/jobs [get]
func SchedulerJobs(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not running"})
		return
	}

	c.JSON(http.StatusOK, JobsResponse{Jobs: sched.GetJobInfos()})
}

// SchedulerRunJob 立即触发指定任务.
//
//	@Summary		立即执行定时任务
//	@Tags			调度器
//	@Produce		json
//	@Param			name	path		string				true	"任务名，例如 blob.orphan_sweep"
//	@Success		202		{object}	map[string]string	"已触发"
//	@Failure		404		{object}	map[string]string	"任务不存在"
//	@Failure		500		{object}	map[string]string	"触发失败"
//	@Failure		503		{object}	map[string]string	"调度器未运行"
//	@Router			/api/v1/scheduler/jobs/{name}/run [post]
func SchedulerRunJob(c *gin.Context) {
	sched := middleware.GetScheduler(c)
	if sched == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scheduler not running"})
		return
	}

	name := c.Param("name")
	if _, err := sched.GetJobInfoByName(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := sched.RunNow(name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "job triggered", "name": name})
}
