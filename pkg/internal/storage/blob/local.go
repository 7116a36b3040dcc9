package blob

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/apperr"
)

// Local 本地文件系统后端.
type Local struct {
	root     string
	filePerm fs.FileMode
	dirPerm  fs.FileMode
}

// NewLocal 创建本地后端.
func NewLocal(cfg configs.BlobConfig) *Local {
	l := &Local{root: cfg.Root, filePerm: fs.FileMode(cfg.FilePerm), dirPerm: fs.FileMode(cfg.DirPerm)}
	if l.filePerm == 0 {
		l.filePerm = configs.DefaultBlobFilePerm
	}

	if l.dirPerm == 0 {
		l.dirPerm = configs.DefaultBlobDirPerm
	}

	return l
}

func (l *Local) Kind() configs.BlobType { return configs.BlobTypeLocal }

// Root 存储根目录.
func (l *Local) Root() string { return l.root }

// Write 先写同目录临时文件，fsync 后 rename 为目标文件.
func (l *Local) Write(ctx context.Context, hash string, data []byte, at time.Time) (string, error) {
	const op = "blob.write"

	if err := ctx.Err(); err != nil {
		return "", apperr.Storage(op, err)
	}

	target := filepath.Join(l.root, filepath.FromSlash(Key(hash, at)))

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+hash+".*.tmp")
	if err != nil {
		return "", apperr.Storage(op, err)
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", apperr.Storage(op, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", apperr.Storage(op, err)
	}

	if err := tmp.Close(); err != nil {
		return "", apperr.Storage(op, err)
	}

	if err := os.Chmod(tmpName, l.filePerm); err != nil {
		return "", apperr.Storage(op, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		return "", apperr.Storage(op, err)
	}

	committed = true

	return target, nil
}

// Prepare 创建 {root}/{year}/{month}.
func (l *Local) Prepare(_ context.Context, at time.Time) error {
	dir := filepath.Join(l.root, filepath.FromSlash(MonthDir(at)))
	if err := os.MkdirAll(dir, l.dirPerm); err != nil {
		return apperr.Storage("blob.prepare", err)
	}

	return nil
}

// List 遍历根目录，根目录不存在时返回空.
func (l *Local) List(ctx context.Context, olderThan time.Time) ([]Object, error) {
	var out []Object

	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		hash, ok := HashOf(p)
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		if !info.ModTime().Before(olderThan) {
			return nil
		}

		out = append(out, Object{Path: p, Hash: hash, Size: info.Size(), ModTime: info.ModTime()})

		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, apperr.Storage("blob.list", err)
	}

	return out, nil
}

// Delete 删除文件，已不存在视为成功.
func (l *Local) Delete(_ context.Context, p string) error {
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Storage("blob.delete", err)
	}

	return nil
}

// Ping 检查根目录存在且是目录.
func (l *Local) Ping(_ context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return apperr.Storage("blob.ping", err)
	}

	if !info.IsDir() {
		return apperr.Storage("blob.ping", &fs.PathError{Op: "stat", Path: l.root, Err: errors.New("not a directory")})
	}

	return nil
}
