package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sony/gobreaker"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	nlog "github.com/yeisme/torrentvault/pkg/log"
)

const torrentContentType = "application/x-bittorrent"

// S3 MinIO/S3 后端. 路径为 bucket 内的对象键，bucket 需预先存在.
type S3 struct {
	cli    *minio.Client
	bucket string
	cb     *gobreaker.CircuitBreaker
}

// NewS3 创建 MinIO 客户端. cb.BlobEnabled 时写入、删除经过熔断器.
func NewS3(ctx context.Context, cfg configs.S3Config, cb configs.CircuitBreakerConfig) (*S3, error) {
	endpoint := cfg.Endpoint
	// 允许传入带 scheme 的 endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("torrentvault", configs.AppVersion)

	s := &S3{cli: cli, bucket: cfg.BucketName}

	if cb.BlobEnabled {
		s.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "blob-s3",
			MaxRequests: cb.MaxRequestsInHalf,
			Interval:    cb.Interval(),
			Timeout:     cb.Timeout(),
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return cb.ShouldTrip(c.Requests, c.TotalFailures)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				nlog.Logger().Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		})
	}

	if err := s.Ping(ctx); err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 blob store connected")

	return s, nil
}

func (s *S3) Kind() configs.BlobType { return configs.BlobTypeS3 }

func (s *S3) do(fn func() error) error {
	if s.cb == nil {
		return fn()
	}

	_, err := s.cb.Execute(func() (any, error) {
		return nil, fn()
	})

	return err
}

// Write PutObject 在服务端是原子的，失败不会留下部分对象.
func (s *S3) Write(ctx context.Context, hash string, data []byte, at time.Time) (string, error) {
	key := Key(hash, at)

	err := s.do(func() error {
		_, err := s.cli.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: torrentContentType})

		return err
	})
	if err != nil {
		return "", apperr.Storage("blob.write", err)
	}

	return key, nil
}

// Prepare 对象存储没有目录.
func (s *S3) Prepare(context.Context, time.Time) error { return nil }

func (s *S3) List(ctx context.Context, olderThan time.Time) ([]Object, error) {
	var out []Object

	for obj := range s.cli.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, apperr.Storage("blob.list", obj.Err)
		}

		hash, ok := HashOf(obj.Key)
		if !ok || !obj.LastModified.Before(olderThan) {
			continue
		}

		out = append(out, Object{Path: obj.Key, Hash: hash, Size: obj.Size, ModTime: obj.LastModified})
	}

	return out, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	err := s.do(func() error {
		return s.cli.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	})
	if err != nil {
		return apperr.Storage("blob.delete", err)
	}

	return nil
}

// Ping 检查 bucket 存在.
func (s *S3) Ping(ctx context.Context) error {
	ok, err := s.cli.BucketExists(ctx, s.bucket)
	if err != nil {
		return apperr.Storage("blob.ping", err)
	}

	if !ok {
		return apperr.Storage("blob.ping", fmt.Errorf("bucket %s does not exist", s.bucket))
	}

	return nil
}
