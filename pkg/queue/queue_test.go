package queue

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

type recorder struct {
	topic string
	msgs  []*message.Message
}

func (r *recorder) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	r.topic = topic
	r.msgs = append(r.msgs, msgs...)

	return nil
}

func TestPublishReleaseCreated(t *testing.T) {
	rec := &recorder{}
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	payload := ReleaseCreatedPayload{MediaType: "music", TorrentID: "t1", ReleaseID: "r1", GroupID: "g1", Hash: "abc"}
	if err := PublishReleaseCreated(context.Background(), rec, payload, WithProducer("torrentvault"), WithOccurredAt(at)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if rec.topic != TopicReleaseCreated || len(rec.msgs) != 1 {
		t.Fatalf("topic=%q msgs=%d", rec.topic, len(rec.msgs))
	}

	msg := rec.msgs[0]
	if msg.Metadata.Get("producer") != "torrentvault" || msg.Metadata.Get("topic") != TopicReleaseCreated {
		t.Errorf("metadata = %v", msg.Metadata)
	}

	env, err := ParseReleaseCreated(msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if env.Payload.ReleaseID != "r1" || env.Payload.Hash != "abc" {
		t.Errorf("payload = %+v", env.Payload)
	}

	if !env.Header.OccurredAt.Equal(at) || env.Header.Version != PayloadVersionV1 {
		t.Errorf("header = %+v", env.Header)
	}
}

func TestBlobSweptRoundTrip(t *testing.T) {
	rec := &recorder{}

	if err := PublishBlobSwept(context.Background(), rec, BlobSweptPayload{Paths: []string{"a", "b"}, Scanned: 3}); err != nil {
		t.Fatal(err)
	}

	env, err := ParseBlobSwept(rec.msgs[0])
	if err != nil {
		t.Fatal(err)
	}

	if len(env.Payload.Paths) != 2 || env.Payload.Scanned != 3 || env.Header.Topic != TopicBlobSwept {
		t.Errorf("envelope = %+v", env)
	}
}
