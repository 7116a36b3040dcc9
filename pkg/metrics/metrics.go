// Package metrics 提供 Prometheus 指标，全部注册在私有 registry 上.
//
//	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
//		return err
//	}
//	metrics.Mount(engine, cfg.Metrics)
//
//	metrics.IngestTotal.WithLabelValues("music", "ok").Inc()
//	defer metrics.ObserveStage("persist", time.Now())
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 注册 pprof 端点到 DefaultServeMux
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/torrentvault/pkg/configs"
)

// 入库结果标签.
const (
	OutcomeOK = "ok"
)

// 全局指标变量. InitMetrics 之前也可以安全使用，只是不会被导出.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter *prometheus.CounterVec
	// RequestDuration HTTP请求持续时间.
	RequestDuration *prometheus.HistogramVec
	// IngestTotal 入库次数，outcome 为 ok 或错误类别.
	IngestTotal *prometheus.CounterVec
	// IngestDuration 各阶段耗时.
	IngestDuration *prometheus.HistogramVec
	// BlobBytes 写入的种子文件字节数.
	BlobBytes prometheus.Counter
	// BlobsSwept 被清理的孤儿文件数.
	BlobsSwept prometheus.Counter

	registry = prometheus.NewRegistry()
	initOnce sync.Once
)

func init() {
	build("torrentvault", nil)
}

func build(ns string, labels prometheus.Labels) {
	RequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "http_requests_total", Help: "Total number of HTTP requests", ConstLabels: labels,
	}, []string{"method", "endpoint", "status"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets, ConstLabels: labels,
	}, []string{"method", "endpoint"})

	IngestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns, Name: "ingest_total", Help: "Release ingestions by media type and outcome", ConstLabels: labels,
	}, []string{"media_type", "outcome"})

	IngestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns, Name: "ingest_duration_seconds", Help: "Ingestion stage duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), ConstLabels: labels,
	}, []string{"stage"})

	BlobBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Name: "blob_bytes_total", Help: "Bytes of sanitized torrent files written", ConstLabels: labels,
	})

	BlobsSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns, Name: "blobs_swept_total", Help: "Orphan torrent files removed", ConstLabels: labels,
	})
}

// InitMetrics 按配置重建并注册指标，只生效一次.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	var err error

	initOnce.Do(func() {
		ns := config.Namespace
		if ns == "" {
			ns = "torrentvault"
		}

		build(ns, prometheus.Labels(config.Labels))

		if config.RuntimeMetrics {
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		for _, c := range []prometheus.Collector{
			RequestCounter, RequestDuration, IngestTotal, IngestDuration, BlobBytes, BlobsSwept,
		} {
			if err = registry.Register(c); err != nil {
				return
			}
		}
	})

	return err
}

// Mount 在 engine 上挂载 /metrics，按需挂载 /debug/pprof.
func Mount(engine *gin.Engine, config configs.MetricsConfig) {
	if !config.Enabled {
		return
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}

// ObserveStage 记录一个阶段自 start 起的耗时，配合 defer 使用.
func ObserveStage(stage string, start time.Time) {
	IngestDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
