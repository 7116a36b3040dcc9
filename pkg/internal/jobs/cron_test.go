package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/storage"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/torrentvault/pkg/internal/storage/db"
	"github.com/yeisme/torrentvault/pkg/scheduler"
)

func TestPrepareMonthsCrossesYear(t *testing.T) {
	root := t.TempDir()
	store := blob.NewLocal(configs.BlobConfig{Root: root})

	now := time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)
	if err := PrepareMonths(context.Background(), store, now); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"2024/12", "2025/1"} {
		if info, err := os.Stat(filepath.Join(root, filepath.FromSlash(dir))); err != nil || !info.IsDir() {
			t.Errorf("%s not prepared: %v", dir, err)
		}
	}
}

func TestRegisterCronJobs(t *testing.T) {
	sched, err := scheduler.NewScheduler()
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = sched.Shutdown() })

	root := t.TempDir()
	mgr := &storage.Manager{DB: &dbc.Client{}, Blob: blob.NewLocal(configs.BlobConfig{Root: root})}

	cfg := &configs.AppConfig{}
	cfg.Blob.PrepareCron = "0 0 * * *"
	cfg.Sweep = configs.SweepConfig{Enabled: true, Cron: "*/15 * * * *", Grace: time.Hour}

	if err := RegisterCronJobs(sched, mgr, cfg); err != nil {
		t.Fatalf("RegisterCronJobs: %v", err)
	}

	infos := sched.GetJobInfos()
	if len(infos) != 2 || infos[0].Name != JobOrphanSweep || infos[1].Name != JobBlobPrepare {
		t.Fatalf("jobs = %+v", infos)
	}

	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(blob.MonthDir(time.Now())))); err != nil {
		t.Errorf("current month not prepared at registration: %v", err)
	}
}

func TestRegisterCronJobsRejectsNil(t *testing.T) {
	if err := RegisterCronJobs(nil, &storage.Manager{}, &configs.AppConfig{}); err == nil {
		t.Error("nil scheduler accepted")
	}
}
