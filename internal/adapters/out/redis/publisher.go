// Package redis fans request notifications out over Redis pub/sub channels.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultChannelPrefix = "lifebank:requests:"

// Publisher publishes each notification to <prefix><topic>. Subscribers
// that are not connected miss the message.
type Publisher struct {
	rdb    *redis.Client
	prefix string
}

func NewPublisher(rdb *redis.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &Publisher{rdb: rdb, prefix: prefix}
}

// NewClient parses url, connects and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

func (p *Publisher) Publish(ctx context.Context, topic, _ string, payload []byte) error {
	if p.rdb == nil {
		return nil
	}
	return p.rdb.Publish(ctx, p.Channel(topic), payload).Err()
}

// Channel returns the pub/sub channel for a notification topic.
func (p *Publisher) Channel(topic string) string {
	return p.prefix + topic
}
