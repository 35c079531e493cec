package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"lifebank/internal/core/domain/model/request"
	"lifebank/internal/core/ports"
	"lifebank/internal/pkg/metrics"

	"github.com/google/uuid"
)

// PublishTimeout bounds a single publish. It runs detached from the caller's
// context, so neither a slow broker nor a client disconnect reaches a
// committed command.
const PublishTimeout = 5 * time.Second

// Notification is the envelope published for every domain event.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Topic     string    `json:"topic"`
	EmittedAt int64     `json:"emitted_at"`
	Data      any       `json:"data"`
}

// RequestCreatedData is the payload of request_created.
type RequestCreatedData struct {
	RequestID  uint64 `json:"request_id"`
	HospitalID string `json:"hospital_id"`
	BloodType  string `json:"blood_type"`
	QuantityMl int    `json:"quantity_ml"`
	Urgency    string `json:"urgency"`
	RequiredBy int64  `json:"required_by"`
	CreatedAt  int64  `json:"created_at"`
}

// RequestStatusChangedData is the payload of request_status_changed.
type RequestStatusChangedData struct {
	RequestID uint64 `json:"request_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedAt int64  `json:"changed_at"`
}

// UnitsAssignedData is the payload of units_assigned.
type UnitsAssignedData struct {
	RequestID     uint64   `json:"request_id"`
	AssignedUnits []uint64 `json:"assigned_units"`
	AssignedAt    int64    `json:"assigned_at"`
}

// EventNotifier publishes lifecycle notifications. Publishing is
// fire-and-forget: failures are logged and counted but never reach the
// caller, whose transaction is already committed.
//
// Example:
//
//	notifier := services.NewEventNotifier(publisher, clock, logger, m)
//	notifier.Notify(ctx, aggregate.DomainEvents()...)
//	aggregate.ClearDomainEvents()
type EventNotifier struct {
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewEventNotifier creates a notifier. m may be nil.
func NewEventNotifier(
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		clock:     clock,
		logger:    logger.With("component", "event_notifier"),
		metrics:   m,
	}
}

// Notify publishes one notification per event, in order, stamped with the
// current instant.
func (n *EventNotifier) Notify(ctx context.Context, events ...request.DomainEvent) {
	for _, event := range events {
		n.publish(ctx, event)
	}
}

func (n *EventNotifier) publish(ctx context.Context, event request.DomainEvent) {
	topic := event.EventName()
	now := n.clock.Now()

	payload, err := Encode(event, now)
	if err == nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PublishTimeout)
		err = n.publisher.Publish(pubCtx, topic, strconv.FormatUint(event.AggregateID(), 10), payload)
		cancel()
	}

	n.metrics.IncrementPublished(topic, err)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to publish notification",
			"topic", topic,
			"request_id", event.AggregateID(),
			"error", err,
		)
		return
	}

	n.logger.DebugContext(ctx, "notification published", "topic", topic, "request_id", event.AggregateID())
}

// Encode renders event as a JSON notification emitted at now.
func Encode(event request.DomainEvent, now time.Time) ([]byte, error) {
	data, err := payloadOf(event, now)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Notification{
		ID:        uuid.New(),
		Topic:     event.EventName(),
		EmittedAt: now.Unix(),
		Data:      data,
	})
}

func payloadOf(event request.DomainEvent, now time.Time) (any, error) {
	switch e := event.(type) {
	case request.RequestCreated:
		return RequestCreatedData{
			RequestID:  e.RequestID,
			HospitalID: e.HospitalID,
			BloodType:  e.BloodType.String(),
			QuantityMl: e.QuantityMl,
			Urgency:    e.Urgency.String(),
			RequiredBy: e.RequiredBy.Unix(),
			CreatedAt:  now.Unix(),
		}, nil
	case request.RequestStatusChanged:
		return RequestStatusChangedData{
			RequestID: e.RequestID,
			OldStatus: e.OldStatus.String(),
			NewStatus: e.NewStatus.String(),
			ChangedAt: now.Unix(),
		}, nil
	case request.UnitsAssigned:
		units := e.AssignedUnits
		if units == nil {
			units = []uint64{}
		}
		return UnitsAssignedData{
			RequestID:     e.RequestID,
			AssignedUnits: units,
			AssignedAt:    now.Unix(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported event %T", event)
	}
}
