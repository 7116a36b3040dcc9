package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	nlog "github.com/yeisme/torrentvault/pkg/log"
	"github.com/yeisme/torrentvault/pkg/metrics"
	"github.com/yeisme/torrentvault/pkg/queue"
	"github.com/yeisme/torrentvault/pkg/tracing"
)

// sweepBatch 每次查询 torrents 的 hash 数量上限.
const sweepBatch = 500

// SweepResult 一次清理的结果.
type SweepResult struct {
	Scanned int       `json:"scanned"`
	Removed []string  `json:"removed"`
	DryRun  bool      `json:"dryRun"`
	Before  time.Time `json:"before"`
}

// SweepService 删除没有对应 torrent 行的种子文件.
type SweepService struct {
	db       *gorm.DB
	blob     blob.Store
	pub      queue.Publisher
	cfg      configs.SweepConfig
	producer string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSweepService 由存储管理器与配置构造.
func NewSweepService(mgr *storage.Manager, cfg *configs.AppConfig) *SweepService {
	s := &SweepService{
		db:       mgr.DB.DB,
		blob:     mgr.Blob,
		cfg:      cfg.Sweep,
		producer: cfg.Events.Producer,
		now:      time.Now,
		logger:   nlog.Component("sweep"),
	}

	if mgr.MQ != nil && cfg.Events.Enabled && cfg.Events.Blob.Swept {
		s.pub = mgr.MQ
	}

	return s
}

// Run 清理修改时间早于 now-grace 的孤儿文件. grace 保护仍在事务中的上传.
func (s *SweepService) Run(ctx context.Context) (res *SweepResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "sweep")
	defer func() { tracing.EndSpan(span, err) }()

	grace := s.cfg.Grace
	if grace <= 0 {
		grace = configs.DefaultSweepGrace
	}

	res = &SweepResult{DryRun: s.cfg.DryRun, Before: s.now().Add(-grace), Removed: []string{}}

	objs, err := s.blob.List(ctx, res.Before)
	if err != nil {
		return nil, err
	}

	res.Scanned = len(objs)

	for start := 0; start < len(objs); start += sweepBatch {
		batch := objs[start:min(start+sweepBatch, len(objs))]

		known, err := s.knownHashes(ctx, batch)
		if err != nil {
			return res, err
		}

		for _, obj := range batch {
			if known[obj.Hash] {
				continue
			}

			if !s.cfg.DryRun {
				if err := s.blob.Delete(ctx, obj.Path); err != nil {
					return res, err
				}
			}

			res.Removed = append(res.Removed, obj.Path)
		}
	}

	if !s.cfg.DryRun {
		metrics.BlobsSwept.Add(float64(len(res.Removed)))
	}

	s.logger.Info().
		Int("scanned", res.Scanned).
		Int("removed", len(res.Removed)).
		Bool("dry_run", res.DryRun).
		Time("before", res.Before).
		Msg("orphan sweep finished")

	s.publishSwept(ctx, res)

	return res, nil
}

func (s *SweepService) knownHashes(ctx context.Context, objs []blob.Object) (map[string]bool, error) {
	hashes := make([]string, 0, len(objs))
	for _, o := range objs {
		hashes = append(hashes, o.Hash)
	}

	var found []string
	if err := s.db.WithContext(ctx).Model(&model.Torrent{}).Where("hash IN ?", hashes).Pluck("hash", &found).Error; err != nil {
		return nil, apperr.Persistence("sweep.lookup", err)
	}

	known := make(map[string]bool, len(found))
	for _, h := range found {
		known[h] = true
	}

	return known, nil
}

func (s *SweepService) publishSwept(ctx context.Context, res *SweepResult) {
	if s.pub == nil || len(res.Removed) == 0 {
		return
	}

	payload := queue.BlobSweptPayload{Paths: res.Removed, Scanned: res.Scanned, DryRun: res.DryRun, Before: res.Before}
	if err := queue.PublishBlobSwept(ctx, s.pub, payload, queue.WithProducer(s.producer)); err != nil {
		s.logger.Warn().Err(err).Int("removed", len(res.Removed)).Msg("publish blob swept failed")
	}
}

// String 摘要，供 CLI 输出.
func (r *SweepResult) String() string {
	verb := "removed"
	if r.DryRun {
		verb = "would remove"
	}

	return fmt.Sprintf("scanned %d, %s %d (before %s)", r.Scanned, verb, len(r.Removed), r.Before.Format(time.RFC3339))
}
