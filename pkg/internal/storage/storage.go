// Package storage 聚合数据库、种子文件存储、KV 与消息队列客户端.
//
//	mgr, err := storage.New(ctx, configs.GetConfig(), metrics.GetRegistry())
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yeisme/torrentvault/pkg/configs"
	"github.com/yeisme/torrentvault/pkg/internal/storage/blob"
	dbc "github.com/yeisme/torrentvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/torrentvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/torrentvault/pkg/internal/storage/mq"
	nlog "github.com/yeisme/torrentvault/pkg/log"
)

// Manager 聚合所有存储资源. MQ 在 events.enabled 为 false 时为 nil.
type Manager struct {
	DB   *dbc.Client
	Blob blob.Store
	KV   *kvc.Client
	MQ   *mqc.Client
}

var (
	mgr     *Manager
	mgrErr  error
	mgrOnce sync.Once
)

// Init 使用全局配置初始化默认 Manager，重复调用只返回已初始化实例.
func Init(ctx context.Context, reg prometheus.Registerer) (*Manager, error) {
	mgrOnce.Do(func() {
		mgr, mgrErr = New(ctx, configs.GetConfig(), reg)
	})

	return mgr, mgrErr
}

// New 按配置创建 Manager. 任一资源失败时关闭已打开的资源.
func New(ctx context.Context, cfg *configs.AppConfig, reg prometheus.Registerer) (*Manager, error) {
	m := &Manager{}

	var err error

	if m.DB, err = dbc.New(ctx, &cfg.DB); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	if m.Blob, err = blob.New(ctx, cfg); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("init blob store: %w", err)
	}

	if m.KV, err = kvc.NewKVClient(ctx, cfg.KV); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("init kv: %w", err)
	}

	if cfg.Events.Enabled {
		if m.MQ, err = mqc.New(ctx, cfg.MQ, reg); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("init mq: %w", err)
		}
	}

	nlog.Logger().Info().
		Str("db", cfg.DB.GetDBType()).
		Str("blob", string(m.Blob.Kind())).
		Str("kv", cfg.KV.Type).
		Bool("events", m.MQ != nil).
		Msg("storage manager initialized")

	return m, nil
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client { return m.DB }

// GetBlobStore 获取种子文件存储.
func (m *Manager) GetBlobStore() blob.Store { return m.Blob }

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client { return m.KV }

// GetMQClient 获取 MQ 客户端，未启用事件时为 nil.
func (m *Manager) GetMQClient() *mqc.Client { return m.MQ }

// Close 释放全部资源.
func (m *Manager) Close() error {
	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}

	return errors.Join(errs...)
}
