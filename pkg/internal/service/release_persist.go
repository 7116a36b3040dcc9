package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/schema"
	"github.com/yeisme/torrentvault/pkg/internal/torrent"
	"github.com/yeisme/torrentvault/pkg/internal/types"
	"github.com/yeisme/torrentvault/pkg/metrics"
	"github.com/yeisme/torrentvault/pkg/tracing"
)

// persist 在一个事务里写入分组、艺人、torrent 与发行行. 事务内的语句全部走 tx，未提交即回滚.
func (s *ReleaseService) persist(ctx context.Context, sub *types.Submission, p *torrent.Processed,
	b model.Binding, sets schema.RefSets,
) (res *types.Result, err error) {
	const op = "ingest.persist"

	defer metrics.ObserveStage("persist", time.Now())

	ctx, span := tracing.StartSpan(ctx, op)
	defer func() { tracing.EndSpan(span, err) }()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperr.Persistence(op, tx.Error)
	}

	committed := false

	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	res = &types.Result{
		MediaType: sub.MediaType,
		Hash:      p.Hash,
		InfoHash:  p.InfoHash,
		Path:      p.Path,
	}

	res.GroupID, res.GroupCreated, err = resolveGroup(tx, sub.MediaType, sub.Group, b, sets, now)
	if err != nil {
		return nil, err
	}

	if sub.MediaType == types.MediaMusic {
		if res.GroupCreated {
			if res.ArtistIDs, err = linkArtists(tx, res.GroupID, sub.Artists, now); err != nil {
				return nil, err
			}
		} else if len(sub.Artists) > 0 {
			s.logger.Debug().Str("group_id", res.GroupID).Int("artists", len(sub.Artists)).
				Msg("artists ignored for existing music group")
		}
	}

	desc, _ := schema.Release(sub.MediaType)

	fields, err := desc.Filter(sub.Info)
	if err != nil {
		return nil, err
	}

	if err = checkRefs(desc, fields, sets); err != nil {
		return nil, err
	}

	files, err := sonic.MarshalString(p.Files)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}

	row := model.Torrent{
		ID:               model.NewIDAt(now),
		Hash:             p.Hash,
		InfoHash:         p.InfoHash,
		FileSize:         p.TotalSize,
		OriginalFileName: p.OriginalFileName,
		FilePath:         p.Path,
		Files:            files,
		UploaderID:       sub.UploaderID,
		CreatedAt:        now,
	}
	if err = tx.Create(&row).Error; err != nil {
		return nil, apperr.Persistence("ingest.torrent", err)
	}

	res.TorrentID = row.ID
	res.ReleaseID = model.NewIDAt(now)

	release := fields.Map()
	release["id"] = res.ReleaseID
	release["torrent_id"] = res.TorrentID
	release[b.GroupColumn] = res.GroupID
	release["created_at"] = now

	if err = tx.Table(b.ReleaseTable).Create(release).Error; err != nil {
		return nil, apperr.Persistence("ingest.release", err)
	}

	if err = tx.Commit().Error; err != nil {
		return nil, apperr.Persistence(op, err)
	}

	committed = true

	return res, nil
}
