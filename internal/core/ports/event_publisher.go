package ports

import "context"

// EventPublisher delivers an encoded notification to external consumers.
// key identifies the aggregate the notification is about.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}
