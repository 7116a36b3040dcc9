// Package configs 管理 torrentvault 的全部配置：数据库、种子文件存储、摄取流水线、消息队列等.
// 支持 YAML、JSON、TOML、dotenv 多种格式，环境变量前缀为 TORRENTVAULT，并可热重载.
//
// Example:
//
//	if err := configs.InitConfig("./"); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := configs.GetConfig()
//	fmt.Println(cfg.Blob.Root, cfg.Ingest.TimeBucketed)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/torrentvault/pkg/rule"
)

// AppVersion 应用版本号.
const AppVersion = "0.3.0"

// EnvPrefix 环境变量前缀，例如 TORRENTVAULT_INGEST_SECRET.
const EnvPrefix = "TORRENTVAULT"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`
		DB             DBConfig             `mapstructure:"db"`
		Blob           BlobConfig           `mapstructure:"blob"`
		S3             S3Config             `mapstructure:"s3"`
		Ingest         IngestConfig         `mapstructure:"ingest"`
		KV             KVConfig             `mapstructure:"kv"`
		MQ             MQConfig             `mapstructure:"mq"`
		Events         EventsConfig         `mapstructure:"events"`
		Log            LogConfig            `mapstructure:"log"`
		Metrics        MetricsConfig        `mapstructure:"metrics"`
		Tracing        TracingConfig        `mapstructure:"tracing"`
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
		Auth           AuthConfig           `mapstructure:"auth"`
		Sweep          SweepConfig          `mapstructure:"sweep"`
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
)

// InitConfig 加载配置. path 可以是配置文件，也可以是包含 config.* 的目录；
// 找不到配置文件时仅使用默认值与环境变量.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(filepath.Join(path, "configs"))

		for _, ext := range []string{"yaml", "yml", "json", "toml", "env", "dotenv"} {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.SetEnvPrefix(EnvPrefix)
	appViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	appViper.AutomaticEnv()

	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := load(appViper); err != nil {
		return err
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// load 解析并校验配置，仅在校验通过后替换全局配置.
func load(v *viper.Viper) error {
	var next AppConfig
	if err := v.Unmarshal(&next); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := rule.ValidateStruct(next); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	globalConfig = next

	return nil
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var c AppConfig

	c.Server.setDefaults(v)
	c.DB.setDefaults(v)
	c.Blob.setDefaults(v)
	c.S3.setDefaults(v)
	c.Ingest.setDefaults(v)
	c.KV.setDefaults(v)
	c.MQ.setDefaults(v)
	c.Events.setDefaults(v)
	c.Log.setDefaults(v)
	c.Metrics.setDefaults(v)
	c.Tracing.setDefaults(v)
	c.RateLimit.setDefaults(v)
	c.CircuitBreaker.setDefaults(v)
	c.Auth.setDefaults(v)
	c.Sweep.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		if err := load(v); err != nil {
			fmt.Printf("Error reloading config, keeping previous values: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper 返回全局 Viper 实例，未初始化时为 nil.
func GetViper() *viper.Viper {
	return appViper
}
