// Package notify delivers fire-and-forget notifications. Sinks never return
// errors to callers: failures are logged and dropped.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

type Sink interface {
	Notify(ctx context.Context, n domain.Notification)
}

// LogSink writes notifications to the application log.
type LogSink struct{}

func (LogSink) Notify(_ context.Context, n domain.Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("message", n.Message),
		zap.String("severity", string(n.Severity)),
	}
	if n.Recipient != nil {
		fields = append(fields, zap.Uint("recipient", *n.Recipient))
	}

	zap.L().Info("notification", fields...)
}

// Fanout forwards every notification to all of its sinks.
type Fanout []Sink

func (f Fanout) Notify(ctx context.Context, n domain.Notification) {
	for _, sink := range f {
		sink.Notify(ctx, n)
	}
}
