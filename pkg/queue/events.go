package queue

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Publisher 发布接口，由 mq.Client 实现.
type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...*message.Message) error
}

// PublishReleaseCreated 发布 tv.release.created 事件.
func PublishReleaseCreated(ctx context.Context, pub Publisher, payload ReleaseCreatedPayload, opts ...func(*EventHeader)) error {
	return publish(ctx, pub, TopicReleaseCreated, payload, opts...)
}

// ParseReleaseCreated 将 Watermill 消息解析为强类型 Envelope.
func ParseReleaseCreated(msg *message.Message) (Message[ReleaseCreatedPayload], error) {
	return ParseWatermillMessage[ReleaseCreatedPayload](msg)
}

// PublishBlobSwept 发布 tv.blob.swept 事件.
func PublishBlobSwept(ctx context.Context, pub Publisher, payload BlobSweptPayload, opts ...func(*EventHeader)) error {
	return publish(ctx, pub, TopicBlobSwept, payload, opts...)
}

// ParseBlobSwept 解析 tv.blob.swept 事件.
func ParseBlobSwept(msg *message.Message) (Message[BlobSweptPayload], error) {
	return ParseWatermillMessage[BlobSweptPayload](msg)
}

func publish[T any](ctx context.Context, pub Publisher, topic string, payload T, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(topic, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(ctx, topic, msg)
}
