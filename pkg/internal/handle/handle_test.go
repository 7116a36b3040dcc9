package handle

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/anacrolix/torrent/bencode"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/model"
	"github.com/yeisme/torrentvault/pkg/internal/service"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/torrentvault/pkg/internal/storage/db"
	"github.com/yeisme/torrentvault/pkg/internal/types"
	"github.com/yeisme/torrentvault/pkg/middleware"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Codec("torrent.decode", nil, "bad"), http.StatusBadRequest},
		{apperr.Validation("schema.music", "music requires a title"), http.StatusBadRequest},
		{apperr.NotFound("ingest.artist", "artist %s", "x"), http.StatusNotFound},
		{apperr.Storage("blob.write", errors.New("disk full")), http.StatusInternalServerError},
		{apperr.Persistence("ingest.release", errors.New("fk")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func newEngine(t *testing.T) *gin.Engine {
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

	store := blob.NewLocal(configs.BlobConfig{Root: filepath.Join(dir, "torrents")})
	if err := store.Prepare(ctx, time.Now()); err != nil {
		t.Fatal(err)
	}

	cfg := &configs.AppConfig{}
	cfg.Ingest = configs.IngestConfig{Secret: "s3cr3t", MaxTorrentBytes: 1 << 16}

	mgr := &storage.Manager{DB: &dbc.Client{DB: gdb}, Blob: store}
	h := NewReleaseHandlers(service.NewReleaseService(mgr, cfg), cfg.Ingest)

	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(middleware.IdentityMiddleware(configs.AuthConfig{Enabled: true, Headers: []string{"X-User"}}))
	e.POST("/upload", h.Upload())

	return e
}

func torrentBytes(t *testing.T, name string) []byte {
	t.Helper()

	buf, err := bencode.Marshal(map[string]any{
		"announce": "http://tracker.example/announce",
		"info": map[string]any{
			"name":         name,
			"piece length": int64(16384),
			"pieces":       "01234567890123456789",
			"files": []any{
				map[string]any{"length": int64(1024), "path": []any{name + ".mkv"}},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	return buf
}

func uploadRequest(t *testing.T, torrent []byte, release string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	if torrent != nil {
		part, err := w.CreateFormFile("torrent", "upload.torrent")
		if err != nil {
			t.Fatal(err)
		}

		if _, err := part.Write(torrent); err != nil {
			t.Fatal(err)
		}
	}

	if release != "" {
		if err := w.WriteField("release", release); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-User", "uploader-1")

	return req
}

func serve(e *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestUploadMovie(t *testing.T) {
	e := newEngine(t)

	release := `{"torrentType":"movie","movie":{"name":"Heat","year":1995},"info":{"title":"Heat 1080p","resolution":"1080p"}}`

	rec := serve(e, uploadRequest(t, torrentBytes(t, "heat"), release))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res types.Result
	if err := sonic.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}

	if res.ReleaseID == "" || res.GroupID == "" || res.TorrentID == "" || !res.GroupCreated {
		t.Errorf("result = %+v", res)
	}

	if res.MediaType != types.MediaMovie {
		t.Errorf("media type = %q", res.MediaType)
	}
}

func TestUploadErrorStatuses(t *testing.T) {
	e := newEngine(t)

	music := `{"torrentType":"music","music":{"title":"Abbey Road"},"info":{"title":"Abbey Road","format":"FLAC"},` +
		`"artists":[{"id":"01HZY3K4Q9V2T6M8N0P1R3S5T7","primary":true}]}`

	cases := []struct {
		name    string
		torrent []byte
		release string
		want    int
		kind    string
	}{
		{"missing torrent", nil, `{"torrentType":"movie"}`, http.StatusBadRequest, "validation"},
		{"missing release", torrentBytes(t, "a"), "", http.StatusBadRequest, "validation"},
		{"bad json", torrentBytes(t, "b"), `{"torrentType":`, http.StatusBadRequest, "validation"},
		{"unknown media", torrentBytes(t, "c"), `{"torrentType":"book","group":"x","info":{}}`, http.StatusBadRequest, "validation"},
		{"not bencode", []byte("hello"), `{"torrentType":"movie","movie":{"name":"x","year":2000},"info":{"title":"x"}}`, http.StatusBadRequest, "codec"},
		{"missing field", torrentBytes(t, "d"), `{"torrentType":"movie","movie":{"name":"x"},"info":{"title":"x"}}`, http.StatusBadRequest, "validation"},
		{"unknown artist", torrentBytes(t, "e"), music, http.StatusNotFound, "not_found"},
		{"too large", bytes.Repeat([]byte("x"), 1<<17), `{"torrentType":"movie"}`, http.StatusBadRequest, "validation"},
	}

	for _, tc := range cases {
		rec := serve(e, uploadRequest(t, tc.torrent, tc.release))
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d (body %s)", tc.name, rec.Code, tc.want, rec.Body.String())

			continue
		}

		var body map[string]any
		if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: body is not JSON: %v", tc.name, err)

			continue
		}

		if body["kind"] != tc.kind {
			t.Errorf("%s: kind = %v, want %s", tc.name, body["kind"], tc.kind)
		}
	}
}

func TestUploadRequiresIdentity(t *testing.T) {
	e := newEngine(t)

	req := uploadRequest(t, torrentBytes(t, "x"), `{"torrentType":"movie"}`)
	req.Header.Del("X-User")

	if rec := serve(e, req); rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
