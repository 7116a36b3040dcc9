package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// BlobType 种子文件存储后端类型.
type BlobType string

const (
	BlobTypeLocal BlobType = "local"
	BlobTypeS3    BlobType = "s3"
)

const (
	DefaultBlobType        = BlobTypeLocal
	DefaultBlobRoot        = "data/torrents" // 本地存储根目录
	DefaultBlobDirPerm     = 0o755
	DefaultBlobFilePerm    = 0o644
	DefaultBlobPrepareCron = "0 0 * * *" // 每天零点准备本月与下月目录
	DefaultS3Endpoint      = "localhost:9000"
	DefaultS3AccessKeyID   = "minioadmin"
	DefaultS3SecretKey     = "minioadmin"
	DefaultS3UseSSL        = false
	DefaultS3BucketName    = "torrentvault"
	DefaultS3Region        = "us-east-1"
)

// BlobConfig 种子文件存储配置.
//
// 写入路径不会创建 {root}/{year}/{month} 目录，需要预先创建：
// `torrentvault blob prepare`，或由 PrepareCron 定时任务提前准备本月与下月. S3 后端要求 bucket 预先存在.
type BlobConfig struct {
	Type     BlobType `mapstructure:"type"      rule:"oneof=local s3"`
	Root     string   `mapstructure:"root"      rule:"required"`
	FilePerm uint32   `mapstructure:"file_perm"`
	DirPerm  uint32   `mapstructure:"dir_perm"`
	// PrepareCron 为空时不注册目录准备任务.
	PrepareCron string `mapstructure:"prepare_cron"`
}

// S3Config MinIO/S3 后端配置.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"          rule:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"-"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"       rule:"required"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

func (c *BlobConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("blob.type", DefaultBlobType)
	v.SetDefault("blob.root", DefaultBlobRoot)
	v.SetDefault("blob.file_perm", DefaultBlobFilePerm)
	v.SetDefault("blob.dir_perm", DefaultBlobDirPerm)
	v.SetDefault("blob.prepare_cron", DefaultBlobPrepareCron)
}

func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("s3.secret_access_key", DefaultS3SecretKey)
	v.SetDefault("s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("s3.region", DefaultS3Region)
}
