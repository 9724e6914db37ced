package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository/memory"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	"github.com/jwalitptl/hospiflow/internal/service/patient"
	"github.com/jwalitptl/hospiflow/internal/service/pharmacy"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

type stockStub struct {
	items []*model.Medicine
	err   error
}

func (s stockStub) LowStock(ctx context.Context) ([]*model.Medicine, error) {
	return s.items, s.err
}

func TestLowStockJobPublishes(t *testing.T) {
	events := &event.Recorder{}
	m := metrics.NewNop()
	job := NewLowStockJob(stockStub{items: []*model.Medicine{
		{ID: "M009", Name: "Aspirin", Quantity: 10, ReorderLevel: 10},
	}}, events, m, logger.Nop())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []model.EventType{model.EventLowStock}, events.Types())
	assert.JSONEq(t, `{"count":1,"medicines":[{"id":"M009","name":"Aspirin","category":"","quantity":10,"unit":"","expiryDate":"","batchNumber":"","reorderLevel":10,"price":0}]}`,
		string(events.Events[0].Payload))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LowStockItems))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues(LowStockJobName, "success")))
}

func TestLowStockJobQuietWhenStocked(t *testing.T) {
	store := memory.NewSeededStore(time.Now())
	patients := patient.NewService(store, store, store)
	events := &event.Recorder{}
	m := metrics.NewNop()
	pharm := pharmacy.NewService(store, store, patients, nil, events)

	require.NoError(t, NewLowStockJob(pharm, events, m, logger.Nop()).Run(context.Background()))
	assert.Empty(t, events.Events)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LowStockItems))
}

func TestLowStockJobError(t *testing.T) {
	m := metrics.NewNop()
	err := NewLowStockJob(stockStub{err: errors.New("boom")}, &event.Recorder{}, m, logger.Nop()).Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues(LowStockJobName, "error")))
}

func TestSchedulerAdd(t *testing.T) {
	s := NewScheduler(logger.Nop())
	job := NewLowStockJob(stockStub{}, &event.Recorder{}, metrics.NewNop(), logger.Nop())

	require.NoError(t, s.Add("0 7 * * *", job))
	assert.Equal(t, 1, s.Len())
	assert.Error(t, s.Add("not a schedule", job))

	s.Start()
	s.Stop()
}
