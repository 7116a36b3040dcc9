package kv_test

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/storage/kv"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()

	client, err := kv.NewKVClient(ctx, configs.KVConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("NewKVClient: %v", err)
	}

	defer client.Close()

	if _, err := client.Get(ctx, "missing"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := client.Set(ctx, "tv:ref:music_qualities", []byte(`["a"]`), 0); err != nil {
		t.Fatal(err)
	}

	if err := client.Set(ctx, "tv:ref:music_release_types", []byte(`["b"]`), time.Hour); err != nil {
		t.Fatal(err)
	}

	_ = client.Set(ctx, "other", []byte("x"), 0)

	got, err := client.Get(ctx, "tv:ref:music_release_types")
	if err != nil || string(got) != `["b"]` {
		t.Errorf("Get ttl value = %q, %v", got, err)
	}

	keys, _ := client.Keys(ctx, "tv:ref:*")
	sort.Strings(keys)

	if len(keys) != 2 || keys[0] != "tv:ref:music_qualities" {
		t.Errorf("Keys = %v", keys)
	}

	if ok, _ := client.Exists(ctx, "other"); !ok {
		t.Error("Exists(other) = false")
	}

	_ = client.Delete(ctx, "other")

	if ok, _ := client.Exists(ctx, "other"); ok {
		t.Error("key survived Delete")
	}
}

func TestMemoryKVExpiry(t *testing.T) {
	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Set(ctx, "short", []byte("v"), time.Millisecond); err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(ctx, "short"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("expired key err = %v", err)
	}
}

func TestUnsupportedType(t *testing.T) {
	if _, err := kv.NewKVStore(context.Background(), "groupcache", nil); err == nil {
		t.Error("expected error for unregistered kv type")
	}

	types := kv.GetRegisteredKVTypes()
	if len(types) == 0 || types[0] != kv.KVTypeMemory {
		t.Errorf("registered = %v", types)
	}
}

// 需要本地 Redis：ENABLE_REDIS_TEST=1 REDIS_ADDR=127.0.0.1:6379.
func TestRedisKV(t *testing.T) {
	if os.Getenv("ENABLE_REDIS_TEST") == "" {
		t.Skip("set ENABLE_REDIS_TEST=1 to enable")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	ctx := context.Background()

	store, err := kv.NewKVStore(ctx, kv.KVTypeRedis, &configs.RedisKVConfig{Addr: addr})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}

	defer store.Close()

	if err := store.Set(ctx, "tv:test", []byte("1"), time.Minute); err != nil {
		t.Fatal(err)
	}

	if v, err := store.Get(ctx, "tv:test"); err != nil || string(v) != "1" {
		t.Errorf("Get = %q, %v", v, err)
	}

	_ = store.Delete(ctx, "tv:test")

	if _, err := store.Get(ctx, "tv:test"); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("deleted key err = %v", err)
	}
}
