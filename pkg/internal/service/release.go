// Package service 实现发行入库流水线与孤儿文件清理.
//
// 一次 Ingest 的顺序：规范化种子 -> 写入 blob -> 加载参照集合 -> 事务内解析分组、
// 关联艺人、校验发行信息、插入 torrent 与发行行 -> 提交 -> 发布事件.
// blob 写入在事务之外，事务失败留下的文件由 SweepService 清理.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/yeisme/torrentvault/pkg/cache"
	"github.com/yeisme/torrentvault/pkg/configs"
	ctxPkg "github.com/yeisme/torrentvault/pkg/context"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/schema"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	"github.com/yeisme/torrentvault/pkg/internal/torrent"
	"github.com/yeisme/torrentvault/pkg/internal/types"
	nlog "github.com/yeisme/torrentvault/pkg/log"
	"github.com/yeisme/torrentvault/pkg/metrics"
	"github.com/yeisme/torrentvault/pkg/queue"
	"github.com/yeisme/torrentvault/pkg/tracing"
)

// ReleaseService 发行入库.
type ReleaseService struct {
	db       *gorm.DB
	blob     blob.Store
	refs     *refLoader
	pub      queue.Publisher
	hasher   torrent.Hasher
	ingest   configs.IngestConfig
	producer string
	logger   zerolog.Logger
}

// NewReleaseService 由存储管理器与配置构造. 未启用 tv.release.created 时不发布事件.
func NewReleaseService(mgr *storage.Manager, cfg *configs.AppConfig) *ReleaseService {
	s := &ReleaseService{
		db:       mgr.DB.DB,
		blob:     mgr.Blob,
		hasher:   torrent.Hasher{Secret: cfg.Ingest.Secret, TimeBucketed: cfg.Ingest.TimeBucketed},
		ingest:   cfg.Ingest,
		producer: cfg.Events.Producer,
		logger:   nlog.Component("ingest"),
	}

	var c *cache.Cache
	if mgr.KV != nil {
		c = cache.NewCache(mgr.KV, cfg.KV.Prefix)
	}

	s.refs = newRefLoader(s.db, c, cfg.Ingest.RefCacheTTL)

	if mgr.MQ != nil && cfg.Events.Enabled && cfg.Events.Release.Created {
		s.pub = mgr.MQ
	}

	return s
}

// InvalidateReferences 删除缓存的参照集合，参照表重新种子化后调用.
func (s *ReleaseService) InvalidateReferences(ctx context.Context) error {
	return s.refs.Invalidate(ctx, schema.RefMusicReleaseTypes, schema.RefMusicQualities)
}

// NewReleaseServiceFromContext 使用 context 中的存储管理器与全局配置.
func NewReleaseServiceFromContext(ctx context.Context) (*ReleaseService, error) {
	mgr := ctxPkg.GetManager(ctx)
	if mgr == nil || mgr.DB == nil || mgr.Blob == nil {
		return nil, fmt.Errorf("storage manager not initialized")
	}

	return NewReleaseService(mgr, configs.GetConfig()), nil
}

// Ingest 处理一次上传. 成功时所有行已提交；失败时不留下任何行，但 blob 可能已写入.
func (s *ReleaseService) Ingest(ctx context.Context, sub *types.Submission) (res *types.Result, err error) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "ingest", trace.WithAttributes(
		attribute.String("media_type", string(sub.MediaType)),
		attribute.String("uploader_id", sub.UploaderID),
	))

	defer func() {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = apperr.KindOf(err).String()
		}

		metrics.IngestTotal.WithLabelValues(string(sub.MediaType), outcome).Inc()
		metrics.ObserveStage("total", start)
		tracing.EndSpan(span, err)
	}()

	binding, ok := model.BindingFor(sub.MediaType)
	if !ok {
		return nil, apperr.Validation("ingest", fmt.Sprintf("unknown torrent type %q", sub.MediaType))
	}

	if limit := s.ingest.MaxTorrentBytes; limit > 0 && int64(len(sub.Torrent)) > limit {
		return nil, apperr.Validation("ingest", fmt.Sprintf("torrent exceeds %d bytes", limit))
	}

	p, err := s.process(ctx, sub)
	if err != nil {
		return nil, err
	}

	if p.Path, err = s.store(ctx, p); err != nil {
		return nil, err
	}

	sets, err := s.loadRefs(ctx, sub)
	if err != nil {
		return nil, err
	}

	res, err = s.persist(ctx, sub, p, binding, sets)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("media_type", string(sub.MediaType)).
			Str("hash", p.Hash).
			Str("path", p.Path).
			Msg("ingest rolled back, blob left for sweeper")

		return nil, err
	}

	s.logger.Info().
		Str("media_type", string(res.MediaType)).
		Str("release_id", res.ReleaseID).
		Str("group_id", res.GroupID).
		Bool("group_created", res.GroupCreated).
		Str("hash", res.Hash).
		Dur("took", time.Since(start)).
		Msg("release ingested")

	s.publishCreated(ctx, sub, res, p)

	return res, nil
}

func (s *ReleaseService) process(ctx context.Context, sub *types.Submission) (*torrent.Processed, error) {
	defer metrics.ObserveStage("process", time.Now())

	_, span := tracing.StartSpan(ctx, "ingest.process")

	p, err := torrent.Process(sub.Torrent, sub.FileName, s.hasher)
	tracing.EndSpan(span, err)

	return p, err
}

func (s *ReleaseService) store(ctx context.Context, p *torrent.Processed) (string, error) {
	defer metrics.ObserveStage("blob", time.Now())

	ctx, span := tracing.StartSpan(ctx, "ingest.blob")

	path, err := s.blob.Write(ctx, p.Hash, p.Bytes, p.ProcessedAt)
	tracing.EndSpan(span, err)

	if err != nil {
		return "", apperr.Ensure(apperr.KindStorage, "blob.write", err)
	}

	metrics.BlobBytes.Add(float64(len(p.Bytes)))

	return path, nil
}

// loadRefs 在开启事务之前加载参照集合，不需要校验时返回 nil.
func (s *ReleaseService) loadRefs(ctx context.Context, sub *types.Submission) (schema.RefSets, error) {
	if !s.ingest.RequireReference {
		return nil, nil
	}

	descs := make([]*schema.Descriptor, 0, 2)

	if !sub.Group.IsID() {
		if d, ok := schema.Group(sub.MediaType); ok {
			descs = append(descs, d)
		}
	}

	if d, ok := schema.Release(sub.MediaType); ok {
		descs = append(descs, d)
	}

	return s.refs.Load(ctx, referenceNames(descs...))
}
