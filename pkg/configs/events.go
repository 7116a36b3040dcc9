package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled  bool                `mapstructure:"enabled"`
	Producer string              `mapstructure:"producer"`
	Release  ReleaseEventsConfig `mapstructure:"release"`
	Blob     BlobEventsConfig    `mapstructure:"blob"`
}

// ReleaseEventsConfig 发行相关事件开关。
type ReleaseEventsConfig struct {
	Created bool `mapstructure:"created"`
}

// BlobEventsConfig 种子文件存储相关事件开关。
type BlobEventsConfig struct {
	Swept bool `mapstructure:"swept"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.producer", "torrentvault")
	v.SetDefault("events.release.created", true)
	// 清理事件量小，默认开启便于审计
	v.SetDefault("events.blob.swept", true)
}
