package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	ctxPkg "github.com/yeisme/torrentvault/pkg/context"
	"github.com/yeisme/torrentvault/pkg/internal/torrent"
	"github.com/yeisme/torrentvault/pkg/internal/types"
	"github.com/yeisme/torrentvault/pkg/queue"
)

// publishCreated 提交后发布 tv.release.created，失败只记日志.
func (s *ReleaseService) publishCreated(ctx context.Context, sub *types.Submission, res *types.Result, p *torrent.Processed) {
	if s.pub == nil {
		return
	}

	payload := queue.ReleaseCreatedPayload{
		MediaType:    string(res.MediaType),
		TorrentID:    res.TorrentID,
		ReleaseID:    res.ReleaseID,
		GroupID:      res.GroupID,
		GroupCreated: res.GroupCreated,
		ArtistIDs:    res.ArtistIDs,
		Hash:         res.Hash,
		InfoHash:     res.InfoHash,
		Path:         res.Path,
		UploaderID:   sub.UploaderID,
		Size:         p.TotalSize,
	}

	opts := []func(*queue.EventHeader){queue.WithProducer(s.producer)}
	if traceID := traceIDFrom(ctx); traceID != "" {
		opts = append(opts, queue.WithTraceID(traceID))
	}

	if err := queue.PublishReleaseCreated(ctx, s.pub, payload, opts...); err != nil {
		l := ctxPkg.WithTraceContext(ctx, s.logger)
		l.Warn().Err(err).Str("release_id", res.ReleaseID).Msg("publish release created failed")
	}
}

func traceIDFrom(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasTraceID() {
		return ""
	}

	return sc.TraceID().String()
}
