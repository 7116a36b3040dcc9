package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	// 默认熔断器配置.
	DefaultCBEnabled           = false
	DefaultCBBlobEnabled       = true
	DefaultCBFailureRate       = 0.5
	DefaultCBMinRequests       = 20
	DefaultCBIntervalSeconds   = 60
	DefaultCBTimeoutSeconds    = 30
	DefaultCBMaxRequestsInHalf = 5
)

// CircuitBreakerConfig 熔断器配置. 同一组阈值用于 HTTP 中间件与 S3 种子文件存储.
type CircuitBreakerConfig struct {
	Enabled           bool    `mapstructure:"enabled"`                                 // HTTP 中间件熔断
	BlobEnabled       bool    `mapstructure:"blob_enabled"`                            // S3 写入熔断
	FailureRate       float64 `mapstructure:"failure_rate"         rule:"min=0,max=1"` // 窗口失败比例阈值
	MinRequests       uint32  `mapstructure:"min_requests"`                            // 进入统计的最小请求数
	IntervalSeconds   int     `mapstructure:"interval_seconds"     rule:"min=0"`       // 统计周期
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"      rule:"min=1"`       // 打开状态持续时间（自动半开）
	MaxRequestsInHalf uint32  `mapstructure:"max_requests_in_half"`                    // 半开状态允许的请求数
}

// Interval 统计周期.
func (c *CircuitBreakerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Timeout 打开状态持续时间.
func (c *CircuitBreakerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShouldTrip 判断计数是否达到熔断条件.
func (c *CircuitBreakerConfig) ShouldTrip(requests, failures uint32) bool {
	if requests < c.MinRequests || requests == 0 {
		return false
	}

	return float64(failures)/float64(requests) >= c.FailureRate
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", DefaultCBEnabled)
	v.SetDefault("circuit_breaker.blob_enabled", DefaultCBBlobEnabled)
	v.SetDefault("circuit_breaker.failure_rate", DefaultCBFailureRate)
	v.SetDefault("circuit_breaker.min_requests", DefaultCBMinRequests)
	v.SetDefault("circuit_breaker.interval_seconds", DefaultCBIntervalSeconds)
	v.SetDefault("circuit_breaker.timeout_seconds", DefaultCBTimeoutSeconds)
	v.SetDefault("circuit_breaker.max_requests_in_half", DefaultCBMaxRequestsInHalf)
}
