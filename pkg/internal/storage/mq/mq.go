// Package mq 封装 watermill 发布/订阅，按 mq.type 选择 gochannel（进程内）或 NATS.
//
//	client, err := mq.New(ctx, cfg.MQ, nil)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	msg := message.NewMessage(watermill.NewUUID(), payload)
//	err = client.Publish(ctx, "tv.release.created", msg)
package mq

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yeisme/torrentvault/pkg/configs"
	nlog "github.com/yeisme/torrentvault/pkg/log"
)

// ErrClosed 客户端已关闭.
var ErrClosed = errors.New("mq client closed")

// Factory 定义创建 Publisher + Subscriber 的工厂函数.
type Factory func(ctx context.Context, cfg *configs.MQConfig, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error)

var factories = map[configs.MQType]Factory{}

// RegisterFactory 注册指定 MQType 的工厂.
func RegisterFactory(t configs.MQType, f Factory) {
	factories[t] = f
}

// RegisteredTypes 返回已注册的 MQ 类型.
func RegisteredTypes() []configs.MQType {
	out := make([]configs.MQType, 0, len(factories))
	for t := range factories {
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	kind       configs.MQType
	prefix     string
	publisher  message.Publisher
	subscriber message.Subscriber
	closed     atomic.Bool
}

// New 创建消息队列客户端. reg 非 nil 且开启 mq.common.enable_metrics 时为发布/订阅加上 prometheus 指标.
func New(ctx context.Context, cfg configs.MQConfig, reg prometheus.Registerer) (*Client, error) {
	factory, ok := factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported mq type: %s", cfg.Type)
	}

	logger := NewLogger(nlog.Logger())

	pub, sub, err := factory(ctx, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init mq (%s): %w", cfg.Type, err)
	}

	if reg != nil && cfg.Common.EnableMetrics {
		builder := metrics.NewPrometheusMetricsBuilder(reg, "torrentvault", "mq")

		if pub, err = builder.DecoratePublisher(pub); err != nil {
			return nil, fmt.Errorf("decorate publisher with metrics: %w", err)
		}

		if sub, err = builder.DecorateSubscriber(sub); err != nil {
			return nil, fmt.Errorf("decorate subscriber with metrics: %w", err)
		}
	}

	nlog.Logger().Info().Str("type", string(cfg.Type)).Msg("mq client initialized")

	return &Client{kind: cfg.Type, prefix: cfg.NATS.SubjectPrefix, publisher: pub, subscriber: sub}, nil
}

// Kind 当前后端类型.
func (c *Client) Kind() configs.MQType { return c.kind }

func (c *Client) topic(t string) string { return c.prefix + t }

// Publish 便捷发布.
func (c *Client) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.publisher == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	if c.closed.Load() {
		return ErrClosed
	}

	return c.publisher.Publish(c.topic(topic), msgs...)
}

// Subscribe 便捷订阅，ctx 结束时通道关闭.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.subscriber == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	if c.closed.Load() {
		return nil, ErrClosed
	}

	return c.subscriber.Subscribe(ctx, c.topic(topic))
}

// Ping 客户端可用时返回 nil.
func (c *Client) Ping(_ context.Context) error {
	if c == nil {
		return fmt.Errorf("mq client not initialized")
	}

	if c.closed.Load() {
		return ErrClosed
	}

	return nil
}

// Close 关闭资源，可重复调用.
func (c *Client) Close() error {
	if c == nil || !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error

	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}

	// gochannel 的 publisher 与 subscriber 是同一实例
	if c.subscriber != nil && any(c.subscriber) != any(c.publisher) {
		errs = append(errs, c.subscriber.Close())
	}

	return errors.Join(errs...)
}
