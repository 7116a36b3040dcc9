package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yeisme/torrentvault/pkg/cache"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/schema"
)

const refCacheKeyPrefix = "ref:"

// refLoader 读取参照表的 id 集合. 有缓存时经 KV 缓存，否则直接查询，并发加载同一集合只查询一次.
type refLoader struct {
	db    *gorm.DB
	cache *cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func newRefLoader(db *gorm.DB, c *cache.Cache, ttl time.Duration) *refLoader {
	return &refLoader{db: db, cache: c, ttl: ttl}
}

// Load 返回 names 对应的集合.
func (l *refLoader) Load(ctx context.Context, names []string) (schema.RefSets, error) {
	sets := make(schema.RefSets, len(names))

	for _, name := range names {
		ids, err := l.ids(ctx, name)
		if err != nil {
			return nil, apperr.Persistence("ingest.refs", err)
		}

		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}

		sets[name] = set
	}

	return sets, nil
}

// Invalidate 删除缓存的集合，参照表变更后调用.
func (l *refLoader) Invalidate(ctx context.Context, names ...string) error {
	if l.cache == nil {
		return nil
	}

	for _, name := range names {
		if err := l.cache.Delete(ctx, refCacheKeyPrefix+name); err != nil {
			return err
		}
	}

	return nil
}

func (l *refLoader) ids(ctx context.Context, name string) ([]string, error) {
	load := func() ([]string, error) {
		var ids []string

		err := l.db.WithContext(ctx).Table(name).Order("id").Pluck("id", &ids).Error

		return ids, err
	}

	if l.cache != nil {
		return cache.GetOrSet(ctx, l.cache, refCacheKeyPrefix+name, load, l.ttl)
	}

	v, err, _ := l.group.Do(name, func() (any, error) { return load() })
	if err != nil {
		return nil, err
	}

	return v.([]string), nil
}

// referenceNames 汇总描述中引用的集合名，去重并排序.
func referenceNames(descs ...*schema.Descriptor) []string {
	seen := map[string]bool{}

	var names []string

	for _, d := range descs {
		for _, set := range d.References {
			if !seen[set] {
				seen[set] = true
				names = append(names, set)
			}
		}
	}

	sort.Strings(names)

	return names
}

func checkRefs(d *schema.Descriptor, fields schema.Fields, sets schema.RefSets) error {
	if sets == nil {
		return nil
	}

	return d.CheckReferences(fields, sets)
}
