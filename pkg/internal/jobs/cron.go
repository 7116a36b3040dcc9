// Package jobs 负责注册与实现业务定时任务（基于 scheduler）.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
	ctxPkg "github.com/yeisme/torrentvault/pkg/context"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	"github.com/yeisme/torrentvault/pkg/log"
	"github.com/yeisme/torrentvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 按 blob.prepare_cron 准备本月与下月的存储目录，注册时先同步执行一次
//   - 按 sweep.cron 清理没有 torrent 行的孤儿种子文件
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager, cfg *configs.AppConfig) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if cfg.Blob.PrepareCron != "" {
		if err := PrepareMonths(baseCtx, mgr.Blob, time.Now()); err != nil {
			return err
		}

		err := sched.AddCron(baseCtx, JobBlobPrepare, cfg.Blob.PrepareCron, func(ctx context.Context) error {
			return PrepareMonths(ctx, mgr.Blob, time.Now())
		})
		if err != nil {
			return err
		}
	}

	if !cfg.Sweep.Enabled {
		log.Logger().Info().Msg("orphan sweep disabled")

		return nil
	}

	sweeper := service.NewSweepService(mgr, cfg)

	return sched.AddCron(baseCtx, JobOrphanSweep, cfg.Sweep.Cron, func(ctx context.Context) error {
		return runOrphanSweep(ctx, sweeper)
	})
}

// PrepareMonths 准备 now 所在月与下一个月的目录，月末上传不会因目录缺失失败.
func PrepareMonths(ctx context.Context, store blob.Store, now time.Time) error {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for _, at := range []time.Time{first, first.AddDate(0, 1, 0)} {
		if err := store.Prepare(ctx, at); err != nil {
			return fmt.Errorf("prepare %s: %w", blob.MonthDir(at), err)
		}
	}

	return nil
}

func runOrphanSweep(ctx context.Context, sweeper *service.SweepService) error {
	l := log.Logger().With().Str("job", JobOrphanSweep).Logger()

	res, err := sweeper.Run(ctx)
	if err != nil {
		return err
	}

	if len(res.Removed) > 0 {
		l.Info().Int("removed", len(res.Removed)).Bool("dry_run", res.DryRun).Msg("orphans swept")
	}

	return nil
}
