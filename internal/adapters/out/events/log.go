package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes notifications to a structured log. It is the sink
// used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_log")}
}

func (p *LogPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	p.logger.InfoContext(ctx, "request notification",
		"topic", topic,
		"key", key,
		"payload", string(payload),
	)
	return nil
}
