package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/schema"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

// resolveGroup 返回分组 id 以及是否新建.
//
// 传入 id 时原样返回，不做存在性检查，悬空 id 在插入发行行时由外键拒绝.
// 传入描述时校验后插入新行，不做去重：两次相同的描述得到两个分组.
func resolveGroup(tx *gorm.DB, media types.MediaType, ref types.GroupRef, b model.Binding,
	sets schema.RefSets, now time.Time,
) (string, bool, error) {
	if ref.IsID() {
		return ref.ID, false, nil
	}

	desc, ok := schema.Group(media)
	if !ok {
		return "", false, apperr.Validation("ingest.group", "no group schema for "+string(media))
	}

	fields, err := desc.Filter(ref.Descriptor)
	if err != nil {
		return "", false, err
	}

	if err := checkRefs(desc, fields, sets); err != nil {
		return "", false, err
	}

	id := model.NewIDAt(now)

	row := fields.Map()
	row["id"] = id
	row["created_at"] = now

	if err := tx.Table(b.GroupTable).Create(row).Error; err != nil {
		return "", false, apperr.Persistence("ingest.group", err)
	}

	return id, true, nil
}
