package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/messaging/memory"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := memory.NewBroker(nil)
	defer broker.Close()
	ch, err := broker.Subscribe(ctx, Channel)
	require.NoError(t, err)

	m := metrics.NewNop()
	svc := NewService(broker, m, logger.Nop())
	fixed := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	svc.Emit(ctx, model.EventStaffCreated, "1", map[string]string{"id": "S005"})

	select {
	case raw := <-ch:
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.JSONEq(t, `"staff.created"`, string(body["type"]))
		assert.JSONEq(t, `{"id":"S005"}`, string(body["payload"]))
		assert.JSONEq(t, `"2026-01-05T09:00:00Z"`, string(body["occurredAt"]))
	case <-time.After(time.Second):
		t.Fatal("event not published")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("staff.created", "success")))
}

type failingBroker struct{ subscribeCloser }

type subscribeCloser interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

func (failingBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return errors.New("broker down")
}

func TestEmitSwallowsPublishFailure(t *testing.T) {
	m := metrics.NewNop()
	svc := NewService(failingBroker{memory.NewBroker(nil)}, m, logger.Nop())

	assert.NotPanics(t, func() {
		svc.Emit(context.Background(), model.EventChatPosted, "2", nil)
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("chat.posted", "failure")))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Emit(context.Background(), model.EventStaffDeleted, "1", map[string]string{"id": "S002"})
	assert.Equal(t, []model.EventType{model.EventStaffDeleted}, r.Types())
}
