// Package kafka publishes request notifications to Kafka topics with
// franz-go. Each notification topic maps to <prefix><topic>; the request id
// is the record key so every notification about a request lands on the same
// partition in emission order.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrPublisherIsNotConfigured = errors.New("kafka publisher: no producer configured")

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

type Publisher struct {
	producer    Producer
	topicPrefix string
}

func NewPublisher(producer Producer, topicPrefix string) (*Publisher, error) {
	if producer == nil {
		return nil, ErrPublisherIsNotConfigured
	}
	return &Publisher{producer: producer, topicPrefix: topicPrefix}, nil
}

// NewClient opens a franz-go client against a comma separated broker list.
func NewClient(brokers string) (*kgo.Client, error) {
	seeds := make([]string, 0)
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			seeds = append(seeds, b)
		}
	}
	if len(seeds) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	return kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
}

// Publish writes payload synchronously and returns the broker error, if any.
func (p *Publisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	record := &kgo.Record{
		Topic: p.Topic(topic),
		Key:   []byte(key),
		Value: payload,
	}

	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", record.Topic, err)
	}
	return nil
}

// Topic returns the Kafka topic a notification topic is written to.
func (p *Publisher) Topic(topic string) string {
	return p.topicPrefix + topic
}
