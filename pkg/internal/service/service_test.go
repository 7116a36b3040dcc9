package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anacrolix/torrent/bencode"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/torrentvault/pkg/internal/storage/db"
	"github.com/yeisme/torrentvault/pkg/internal/storage/kv"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

const testSecret = "s3cr3t"

type testEnv struct {
	db    *gorm.DB
	store *blob.Local
	at    time.Time
	mgr   *storage.Manager
	cfg   *configs.AppConfig
	svc   *ReleaseService
}

// newEnv 临时目录上的 sqlite（开启外键）与本地 blob，已准备 at 所在月份的目录.
func newEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	gdb, err := gorm.Open(sqlite.Open(configs.SQLiteFileDSN(filepath.Join(dir, "tv.db"))), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatal(err)
	}

	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.Migrate(ctx, gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	at := time.Date(2024, time.March, 9, 12, 30, 0, 0, time.UTC)

	store := blob.NewLocal(configs.BlobConfig{Root: filepath.Join(dir, "torrents")})
	if err := store.Prepare(ctx, at); err != nil {
		t.Fatal(err)
	}

	mem, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &configs.AppConfig{}
	cfg.Ingest = configs.IngestConfig{
		Secret:           testSecret,
		TimeBucketed:     true,
		MaxTorrentBytes:  1 << 20,
		RefCacheTTL:      time.Minute,
		RequireReference: true,
	}
	cfg.KV.Prefix = "tv:"
	cfg.Sweep.Grace = time.Hour

	mgr := &storage.Manager{DB: &dbc.Client{DB: gdb}, Blob: store, KV: &kv.Client{KVStore: mem}}

	env := &testEnv{db: gdb, store: store, at: at, mgr: mgr, cfg: cfg}
	env.svc = env.newService()

	return env
}

func (e *testEnv) newService() *ReleaseService {
	svc := NewReleaseService(e.mgr, e.cfg)
	svc.hasher.Clock = func() time.Time { return e.at }

	return svc
}

func (e *testEnv) count(t *testing.T, table string) int64 {
	t.Helper()

	var n int64
	if err := e.db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}

	return n
}

func (e *testEnv) qualityID(t *testing.T, name string) string {
	t.Helper()

	var q model.MusicQuality
	if err := e.db.Where("name = ?", name).First(&q).Error; err != nil {
		t.Fatalf("quality %s: %v", name, err)
	}

	return q.ID
}

// torrentFile 生成带 announce 的多文件种子，name 区分内容.
func torrentFile(t *testing.T, name string) []byte {
	t.Helper()

	buf, err := bencode.Marshal(map[string]any{
		"announce": "http://tracker.example/announce?passkey=abc",
		"info": map[string]any{
			"name":         name,
			"piece length": int64(16384),
			"pieces":       "01234567890123456789",
			"files": []any{
				map[string]any{"length": int64(300), "path": []any{name, "01.flac"}},
				map[string]any{"length": int64(200), "path": []any{name, "02.flac"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal torrent: %v", err)
	}

	return buf
}

func musicSubmission(t *testing.T, name string, info map[string]any) *types.Submission {
	t.Helper()

	return &types.Submission{
		MediaType: types.MediaMusic,
		Torrent:   torrentFile(t, name),
		FileName:  name + ".torrent",
		Group:     types.GroupRef{Descriptor: map[string]any{"title": name, "year": float64(1969)}},
		Info:      info,
		Artists: []types.ArtistRef{
			{Descriptor: map[string]any{"name": "The Beatles"}, Primary: true},
		},
		UploaderID: "uploader-1",
	}
}

func movieSubmission(t *testing.T, name string, group types.GroupRef) *types.Submission {
	t.Helper()

	return &types.Submission{
		MediaType:  types.MediaMovie,
		Torrent:    torrentFile(t, name),
		FileName:   name + ".torrent",
		Group:      group,
		Info:       map[string]any{"title": name, "resolution": "1080p"},
		UploaderID: "uploader-2",
	}
}

func fileExists(t *testing.T, p string) bool {
	t.Helper()

	_, err := os.Stat(p)

	return err == nil
}
