package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultIngestMaxTorrentBytes = 10 * 1024 * 1024 // 种子文件大小上限 10MB
	DefaultIngestRefCacheTTL     = 10 * time.Minute // 参考数据（音质、发行类型）缓存时间
	DefaultIngestTimeBucketed    = true
)

// IngestConfig 摄取流水线配置.
type IngestConfig struct {
	// Secret 参与内容哈希计算的共享密钥.
	Secret string `mapstructure:"secret" json:"-"`
	// TimeBucketed 为 true 时哈希混入当前 Unix 秒，与历史数据保持一致；
	// 设为 false 则哈希仅由密钥与规范化字节决定.
	TimeBucketed     bool          `mapstructure:"time_bucketed"`
	MaxTorrentBytes  int64         `mapstructure:"max_torrent_bytes" rule:"min=1"`
	RefCacheTTL      time.Duration `mapstructure:"ref_cache_ttl"`
	RequireReference bool          `mapstructure:"require_reference"` // 是否校验 quality 等字段在参考表中存在
}

func (c *IngestConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("ingest.secret", "")
	v.SetDefault("ingest.time_bucketed", DefaultIngestTimeBucketed)
	v.SetDefault("ingest.max_torrent_bytes", DefaultIngestMaxTorrentBytes)
	v.SetDefault("ingest.ref_cache_ttl", DefaultIngestRefCacheTTL)
	v.SetDefault("ingest.require_reference", true)
}
