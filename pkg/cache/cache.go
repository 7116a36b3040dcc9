// Package cache 提供基于键值存储的泛型缓存，用于参照集合等读多写少的数据.
//
//	c := cache.NewCache(kvClient, "tv:")
//	ids, err := cache.GetOrSet(ctx, c, "ref:music_qualities", func() ([]string, error) {
//		return loadQualities(ctx)
//	}, 5*time.Minute)
//
// 值以 JSON（bytedance/sonic）存储. 同一进程内对同一键的并发 GetOrSet 只会调用一次 getter.
// 缓存写入失败不影响返回值.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/yeisme/torrentvault/pkg/internal/storage/kv"
	nlog "github.com/yeisme/torrentvault/pkg/log"
)

// Cache 基于KV存储的缓存实现.
type Cache struct {
	kvStore kv.KVStore
	prefix  string
	group   singleflight.Group
}

// NewCache 创建缓存实例，所有键加上 prefix.
func NewCache(kvStore kv.KVStore, prefix string) *Cache {
	return &Cache{kvStore: kvStore, prefix: prefix}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// Get 泛型获取缓存值. 未命中返回 kv.ErrNotFound.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, c.key(key))
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set 泛型设置缓存值.
func Set[T any](ctx context.Context, c *Cache, key string, value T, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.kvStore.Set(ctx, c.key(key), data, ttl)
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, c.key(key))
}

// Exists 检查缓存键是否存在.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.kvStore.Exists(ctx, c.key(key))
}

// GetOrSet 获取缓存值，未命中时调用 getter 并回填.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error), ttl time.Duration) (T, error) {
	var zero T

	value, err := Get[T](ctx, c, key)
	if err == nil {
		return value, nil
	}

	if !errors.Is(err, kv.ErrNotFound) {
		nlog.Logger().Warn().Err(err).Str("key", key).Msg("cache read failed, loading from source")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		loaded, err := getter()
		if err != nil {
			return nil, err
		}

		if setErr := Set(ctx, c, key, loaded, ttl); setErr != nil {
			nlog.Logger().Warn().Err(setErr).Str("key", key).Msg("cache write failed")
		}

		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

// Clear 清空带前缀的全部键.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.kvStore.Keys(ctx, c.prefix+"*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		if delErr := c.kvStore.Delete(ctx, key); delErr != nil {
			return delErr
		}
	}

	return nil
}
