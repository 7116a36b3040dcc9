package configs

import "github.com/spf13/viper"

// AuthConfig 上游代理注入的身份头配置。认证本身由上游完成，这里只负责取出上传者标识。
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Headers       []string `mapstructure:"headers"`         // 按顺序查找的身份请求头
	SkipPaths     []string `mapstructure:"skip_paths"`      // 不要求身份的路径前缀
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // 开发模式允许 ?uploader= 便于本地调试
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.headers", []string{"X-User", "X-Auth-Request-User", "X-Forwarded-User"})
	v.SetDefault("auth.dev_allow_query", false)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/debug/pprof",
		"/api/v1/health",
	})
}
