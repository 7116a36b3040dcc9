// Package blob 保存规范化后的种子字节.
//
// 路径布局固定为 {root}/{year}/{month}/{hash}.torrent，月份不补零.
// 写入要么完整成功，要么不留下目标文件；父目录不存在时直接失败，不会自动创建.
package blob

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
)

// Ext 种子文件扩展名.
const Ext = ".torrent"

// Object 存储中的一个种子文件.
type Object struct {
	Path    string
	Hash    string
	Size    int64
	ModTime time.Time
}

// Store 种子文件存储.
type Store interface {
	// Write 写入 {year}/{month}/{hash}.torrent 并返回持久化路径.
	Write(ctx context.Context, hash string, data []byte, at time.Time) (string, error)
	// Prepare 为 at 所在月份准备目录（对象存储无需准备）.
	Prepare(ctx context.Context, at time.Time) error
	// List 列出修改时间早于 olderThan 的种子文件.
	List(ctx context.Context, olderThan time.Time) ([]Object, error)
	// Delete 删除 Write/List 返回的路径.
	Delete(ctx context.Context, p string) error
	// Ping 检查后端可用.
	Ping(ctx context.Context) error
	// Kind 后端类型.
	Kind() configs.BlobType
}

// Key 返回相对于存储根的键.
func Key(hash string, at time.Time) string {
	return path.Join(MonthDir(at), hash+Ext)
}

// MonthDir 返回 {year}/{month}.
func MonthDir(at time.Time) string {
	return fmt.Sprintf("%d/%d", at.Year(), int(at.Month()))
}

// HashOf 从路径中取出 hash，非种子文件返回 false.
func HashOf(p string) (string, bool) {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if !strings.HasSuffix(base, Ext) || strings.HasPrefix(base, ".") {
		return "", false
	}

	return strings.TrimSuffix(base, Ext), true
}

// New 按配置创建存储后端.
func New(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	switch cfg.Blob.Type {
	case configs.BlobTypeLocal, "":
		return NewLocal(cfg.Blob), nil
	case configs.BlobTypeS3:
		return NewS3(ctx, cfg.S3, cfg.CircuitBreaker)
	default:
		return nil, fmt.Errorf("unsupported blob type: %s", cfg.Blob.Type)
	}
}
