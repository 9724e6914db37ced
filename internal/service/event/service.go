package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/messaging"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

// Channel carries every domain event.
const Channel = "hospiflow.events"

// Emitter is what domain services depend on.
type Emitter interface {
	Emit(ctx context.Context, eventType model.EventType, actorID string, payload interface{})
}

type Service struct {
	broker  messaging.Broker
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(broker messaging.Broker, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		broker:  broker,
		metrics: m,
		logger:  log.With("events"),
		now:     time.Now,
	}
}

// Emit publishes the event. The state change it describes has already
// happened, so a failed publish is logged and counted rather than returned.
func (s *Service) Emit(ctx context.Context, eventType model.EventType, actorID string, payload interface{}) {
	evt, err := s.build(eventType, actorID, payload)
	if err == nil {
		err = s.broker.Publish(ctx, Channel, evt)
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
		s.logger.Error(err, "failed to publish event", "type", string(eventType))
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(string(eventType), outcome).Inc()
	}
}

func (s *Service) build(eventType model.EventType, actorID string, payload interface{}) (*model.Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return &model.Event{
		ID:         uuid.New(),
		Type:       eventType,
		ActorID:    actorID,
		Payload:    raw,
		OccurredAt: s.now().UTC(),
	}, nil
}

// Listen writes every event seen on the channel to the log until ctx ends.
// It gives operators an audit trail of domain changes.
func (s *Service) Listen(ctx context.Context) error {
	return messaging.Consume(ctx, s.broker, Channel, func(msg []byte) error {
		var evt model.Event
		if err := json.Unmarshal(msg, &evt); err != nil {
			return fmt.Errorf("failed to decode event: %w", err)
		}
		s.logger.Info("domain event",
			"id", evt.ID.String(),
			"type", string(evt.Type),
			"actor", evt.ActorID,
			"occurredAt", evt.OccurredAt.Format(time.RFC3339),
		)
		return nil
	}, func(err error) {
		s.logger.Error(err, "event listener")
	})
}

// Recorder is an Emitter that keeps events in memory. Used in tests.
type Recorder struct {
	mu     sync.Mutex
	Events []model.Event
}

func (r *Recorder) Emit(ctx context.Context, eventType model.EventType, actorID string, payload interface{}) {
	raw, _ := json.Marshal(payload)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, model.Event{Type: eventType, ActorID: actorID, Payload: raw})
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.EventType, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}
