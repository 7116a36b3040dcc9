package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Prometheus 监控配置. 指标挂载在主 HTTP 服务的 /metrics 上.
type MetricsConfig struct {
	Enabled        bool              `mapstructure:"enabled"`
	Namespace      string            `mapstructure:"namespace"`       // 指标名前缀，如 torrentvault_ingest_total
	RuntimeMetrics bool              `mapstructure:"runtime_metrics"` // 是否收集 Go 运行时与进程指标
	Pprof          bool              `mapstructure:"pprof"`           // 是否暴露 /debug/pprof
	GORM           bool              `mapstructure:"gorm"`            // 是否注册 gorm 连接池指标
	Labels         map[string]string `mapstructure:"labels"`          // 附加到所有指标的常量标签
}

// setDefaults 设置Metrics配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "torrentvault")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
	v.SetDefault("metrics.gorm", true)
	v.SetDefault("metrics.labels", map[string]string{})
}
