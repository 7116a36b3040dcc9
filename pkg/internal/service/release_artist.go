package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/schema"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

const artistsTable = "artists"

// linkArtists 为新建的音乐分组关联艺人，至少一个.
// 同一 id 不能重复出现. 引用已有 id 的先检查存在性；描述对象校验后插入新艺人.
func linkArtists(tx *gorm.DB, musicID string, refs []types.ArtistRef, now time.Time) ([]string, error) {
	const op = "ingest.artists"

	if len(refs) == 0 {
		return nil, apperr.Validation(op, "music requires at least one artist")
	}

	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			continue
		}

		if _, dup := seen[ref.ID]; dup {
			return nil, apperr.Validation(op, fmt.Sprintf("artist %q listed more than once", ref.ID))
		}

		seen[ref.ID] = struct{}{}
	}

	ids := make([]string, 0, len(refs))

	for _, ref := range refs {
		id, err := resolveArtist(tx, ref, now)
		if err != nil {
			return nil, err
		}

		link := model.MusicArtist{MusicID: musicID, ArtistID: id, IsPrimary: ref.Primary}
		if err := tx.Create(&link).Error; err != nil {
			return nil, apperr.Persistence(op, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func resolveArtist(tx *gorm.DB, ref types.ArtistRef, now time.Time) (string, error) {
	const op = "ingest.artist"

	if ref.ID != "" {
		var n int64
		if err := tx.Model(&model.Artist{}).Where("id = ?", ref.ID).Count(&n).Error; err != nil {
			return "", apperr.Persistence(op, err)
		}

		if n == 0 {
			return "", apperr.NotFound(op, "artist %q does not exist", ref.ID)
		}

		return ref.ID, nil
	}

	fields, err := schema.Artist.Filter(ref.Descriptor)
	if err != nil {
		return "", err
	}

	id := model.NewIDAt(now)

	row := fields.Map()
	row["id"] = id
	row["created_at"] = now

	if err := tx.Table(artistsTable).Create(row).Error; err != nil {
		return "", apperr.Persistence(op, err)
	}

	return id, nil
}
