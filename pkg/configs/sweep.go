package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSweepEnabled = true
	DefaultSweepCron    = "17 4 * * *" // 每天 04:17
	DefaultSweepGrace   = 24 * time.Hour
	DefaultSweepDryRun  = false
)

// SweepConfig 孤儿种子文件清理任务配置.
// 事务失败后已写盘的文件不会回滚，由该任务按"无对应 torrent 行"清理.
type SweepConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Cron    string        `mapstructure:"cron"    rule:"required"`
	Grace   time.Duration `mapstructure:"grace"`
	DryRun  bool          `mapstructure:"dry_run"`
}

func (c *SweepConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("sweep.enabled", DefaultSweepEnabled)
	v.SetDefault("sweep.cron", DefaultSweepCron)
	v.SetDefault("sweep.grace", DefaultSweepGrace)
	v.SetDefault("sweep.dry_run", DefaultSweepDryRun)
}
