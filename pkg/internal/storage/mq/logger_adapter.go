package mq

import (
	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// zerologAdapter 将 zerolog 适配为 watermill.LoggerAdapter，所有事件带 component=mq.
type zerologAdapter struct {
	l *zerolog.Logger
}

// NewLogger 包装 zerolog.
func NewLogger(l *zerolog.Logger) watermill.LoggerAdapter {
	sub := l.With().Str("component", "mq").Logger()

	return &zerologAdapter{l: &sub}
}

func withFields(ev *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	return ev.Fields(map[string]any(fields))
}

func (z *zerologAdapter) Error(msg string, err error, fields watermill.LogFields) {
	withFields(z.l.Error().Err(err), fields).Msg(msg)
}

func (z *zerologAdapter) Info(msg string, fields watermill.LogFields) {
	withFields(z.l.Info(), fields).Msg(msg)
}

func (z *zerologAdapter) Debug(msg string, fields watermill.LogFields) {
	withFields(z.l.Debug(), fields).Msg(msg)
}

func (z *zerologAdapter) Trace(msg string, fields watermill.LogFields) {
	withFields(z.l.Trace(), fields).Msg(msg)
}

func (z *zerologAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	logger := z.l.With().Fields(map[string]any(fields)).Logger()

	return &zerologAdapter{l: &logger}
}

// String 实现 fmt.Stringer.
func (z *zerologAdapter) String() string { return "zerolog-watermill" }
