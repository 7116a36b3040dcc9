// Package app 组装 HTTP 服务：日志、追踪、指标、存储、定时任务与路由.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/torrentvault/pkg/api"
	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/handle"
	"github.com/yeisme/torrentvault/pkg/internal/jobs"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/router"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/log"
	"github.com/yeisme/torrentvault/pkg/metrics"
	"github.com/yeisme/torrentvault/pkg/middleware"
	"github.com/yeisme/torrentvault/pkg/scheduler"
	"github.com/yeisme/torrentvault/pkg/tracing"
)

type App struct {
	Engine  *gin.Engine
	config  *configs.AppConfig
	manager *storage.Manager
	sched   *scheduler.Scheduler
	logger  zerolog.Logger
}

// NewApp 按已加载的配置初始化全部依赖. 调用方负责 configs.InitConfig.
func NewApp(ctx context.Context, config *configs.AppConfig) (*App, error) {
	log.Init()

	if err := tracing.InitTracer(config.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	manager, err := storage.Init(ctx, metrics.GetRegistry())
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if config.DB.AutoMigrate {
		if err := model.Migrate(ctx, manager.DB.DB); err != nil {
			_ = manager.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("init scheduler: %w", err)
	}

	if err := jobs.RegisterCronJobs(sched, manager, config); err != nil {
		_ = sched.Shutdown()
		_ = manager.Close()

		return nil, fmt.Errorf("register jobs: %w", err)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.CORSMiddleware(config.Auth),
		middleware.IdentityMiddleware(config.Auth),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
	)

	if config.Server.Gzip {
		engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	metrics.Mount(engine, config.Metrics)
	router.RegisterSwaggerRoute(engine, config.Server)

	releases := handle.NewReleaseHandlers(service.NewReleaseService(manager, config), config.Ingest)
	api.RegisterGroup(engine, releases)

	return &App{
		Engine:  engine,
		config:  config,
		manager: manager,
		sched:   sched,
		logger:  log.Component("app"),
	}, nil
}

// Run 启动调度器与 HTTP 服务，ctx 取消后在 shutdown_grace 内优雅退出.
func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
		ReadTimeout:       a.config.Server.GetTimeoutDuration(),
	}

	a.sched.Start()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", addr).Msg("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	var runErr error

	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.GetShutdownGrace())
	defer cancel()

	a.logger.Info().Msg("shutting down")

	return errors.Join(
		runErr,
		srv.Shutdown(shutdownCtx),
		a.sched.Shutdown(),
		tracing.ShutdownTracer(shutdownCtx),
		a.manager.Close(),
	)
}
