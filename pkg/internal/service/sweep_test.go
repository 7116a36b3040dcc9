package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yeisme/torrentvault/pkg/internal/apperr"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	"github.com/yeisme/torrentvault/pkg/internal/torrent"
	"github.com/yeisme/torrentvault/pkg/internal/types"
)

func TestSweepRemovesOrphansOnly(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	kept, err := env.svc.Ingest(ctx, movieSubmission(t, "Heat", types.GroupRef{
		Descriptor: map[string]any{"name": "Heat", "year": float64(1995)},
	}))
	if err != nil {
		t.Fatal(err)
	}

	failed := musicSubmission(t, "Abbey Road", map[string]any{"title": "Abbey Road"})
	if _, err := env.svc.Ingest(ctx, failed); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	p, err := torrent.Process(failed.Torrent, failed.FileName, env.svc.hasher)
	if err != nil {
		t.Fatal(err)
	}

	orphan := filepath.Join(env.store.Root(), filepath.FromSlash(blob.Key(p.Hash, env.at)))

	sweeper := NewSweepService(env.mgr, env.cfg)

	// 宽限期内不删除
	res, err := sweeper.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Removed) != 0 || !fileExists(t, orphan) {
		t.Fatalf("fresh orphan removed inside grace period: %+v", res)
	}

	sweeper.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	res, err = sweeper.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if res.Scanned != 2 || len(res.Removed) != 1 || res.Removed[0] != orphan {
		t.Fatalf("sweep result = %+v", res)
	}

	if fileExists(t, orphan) {
		t.Error("orphan still on disk")
	}

	if !fileExists(t, kept.Path) {
		t.Error("referenced blob was removed")
	}
}

func TestSweepDryRun(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	path, err := env.store.Write(ctx, "deadbeef", []byte("d4:infode"), env.at)
	if err != nil {
		t.Fatal(err)
	}

	env.cfg.Sweep.DryRun = true
	sweeper := NewSweepService(env.mgr, env.cfg)
	sweeper.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	res, err := sweeper.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Removed) != 1 || !res.DryRun || !fileExists(t, path) {
		t.Errorf("dry run result = %+v", res)
	}
}
