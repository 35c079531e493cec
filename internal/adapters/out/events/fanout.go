// Package events composes event publishers.
package events

import (
	"context"
	"errors"

	"lifebank/internal/core/ports"
)

// FanOutPublisher delivers every notification to all of its publishers.
// A failing publisher does not stop the others; their errors are joined.
type FanOutPublisher struct {
	publishers []ports.EventPublisher
}

func NewFanOutPublisher(publishers ...ports.EventPublisher) *FanOutPublisher {
	ps := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return &FanOutPublisher{publishers: ps}
}

func (f *FanOutPublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, topic, key, payload); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// Len returns the number of publishers.
func (f *FanOutPublisher) Len() int {
	return len(f.publishers)
}
