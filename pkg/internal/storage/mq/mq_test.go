package mq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yeisme/torrentvault/pkg/configs"
)

func newGoChannel(t *testing.T) *Client {
	t.Helper()

	cfg := configs.MQConfig{Type: configs.MQTypeGoChannel}
	cfg.GoChannel.OutputBuffer = 8
	cfg.Common.EnableMetrics = true

	c, err := New(context.Background(), cfg, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestGoChannelPublishSubscribe(t *testing.T) {
	c := newGoChannel(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := c.Subscribe(ctx, "tv.test")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := c.Publish(ctx, "tv.test", message.NewMessage(watermill.NewUUID(), []byte("hello"))); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case m := <-ch:
		if string(m.Payload) != "hello" {
			t.Errorf("payload = %q", m.Payload)
		}

		m.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestClosedClient(t *testing.T) {
	c := newGoChannel(t)

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if err := c.Publish(context.Background(), "tv.test"); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish after close = %v", err)
	}

	if err := c.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping after close = %v", err)
	}
}

func TestUnsupportedType(t *testing.T) {
	if _, err := New(context.Background(), configs.MQConfig{Type: "kafka"}, nil); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestBuildURLPrefersCluster(t *testing.T) {
	cfg := &configs.MQConfig{}
	cfg.Common.URL = "nats://a:4222"

	if got := buildURL(cfg); got != "nats://a:4222" {
		t.Errorf("url = %q", got)
	}

	cfg.NATS.ClusterURLs = []string{"nats://b:4222", "nats://c:4222"}
	if got := buildURL(cfg); got != "nats://b:4222,nats://c:4222" {
		t.Errorf("url = %q", got)
	}
}
