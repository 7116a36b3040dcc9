package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return dir
}

// TestInitConfigDefaults 没有配置文件时使用默认值.
func TestInitConfigDefaults(t *testing.T) {
	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	cfg := configs.GetConfig()
	if cfg.DB.Type != configs.SQLite {
		t.Errorf("db.type = %q, want sqlite", cfg.DB.Type)
	}

	if cfg.Blob.Type != configs.BlobTypeLocal {
		t.Errorf("blob.type = %q, want local", cfg.Blob.Type)
	}

	if !cfg.Ingest.TimeBucketed {
		t.Error("ingest.time_bucketed should default to true")
	}

	if cfg.Sweep.Grace != configs.DefaultSweepGrace {
		t.Errorf("sweep.grace = %s, want %s", cfg.Sweep.Grace, configs.DefaultSweepGrace)
	}

	if cfg.MQ.Type != configs.MQTypeGoChannel {
		t.Errorf("mq.type = %q, want gochannel", cfg.MQ.Type)
	}
}

// TestInitConfigFile 配置文件与环境变量覆盖默认值.
func TestInitConfigFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9191
  reload_config: false
ingest:
  secret: s3cr3t
  time_bucketed: false
  ref_cache_ttl: 30s
blob:
  root: /srv/torrents
`)

	t.Setenv("TORRENTVAULT_DB_DATABASE", "from-env")

	if err := configs.InitConfig(dir); err != nil {
		t.Fatalf("InitConfig: %v", err)
	}

	cfg := configs.GetConfig()
	if cfg.Server.Port != 9191 {
		t.Errorf("server.port = %d, want 9191", cfg.Server.Port)
	}

	if cfg.Ingest.Secret != "s3cr3t" || cfg.Ingest.TimeBucketed {
		t.Errorf("ingest = %+v", cfg.Ingest)
	}

	if cfg.Ingest.RefCacheTTL != 30*time.Second {
		t.Errorf("ref_cache_ttl = %s", cfg.Ingest.RefCacheTTL)
	}

	if cfg.Blob.Root != "/srv/torrents" {
		t.Errorf("blob.root = %q", cfg.Blob.Root)
	}

	if cfg.DB.Database != "from-env" {
		t.Errorf("db.database = %q, want from-env", cfg.DB.Database)
	}
}

// TestInitConfigInvalid 校验失败时返回错误.
func TestInitConfigInvalid(t *testing.T) {
	dir := writeConfig(t, `
server:
  reload_config: false
blob:
  type: ftp
`)

	if err := configs.InitConfig(dir); err == nil {
		t.Fatal("expected validation error for blob.type=ftp")
	}
}

func TestSQLiteDSN(t *testing.T) {
	c := configs.DBConfig{Type: configs.SQLite, Database: "vault"}

	want := "file:vault.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_foreign_keys=1&_busy_timeout=5000"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}

	c.DSN = "file::memory:"
	if got := c.GetDSN(); got != "file::memory:" {
		t.Errorf("explicit DSN not honored: %q", got)
	}
}

func TestCircuitBreakerShouldTrip(t *testing.T) {
	c := configs.CircuitBreakerConfig{FailureRate: 0.5, MinRequests: 4}

	cases := []struct {
		req, fail uint32
		want      bool
	}{
		{0, 0, false},
		{3, 3, false},
		{4, 1, false},
		{4, 2, true},
		{10, 9, true},
	}

	for _, tc := range cases {
		if got := c.ShouldTrip(tc.req, tc.fail); got != tc.want {
			t.Errorf("ShouldTrip(%d,%d) = %v, want %v", tc.req, tc.fail, got, tc.want)
		}
	}
}
