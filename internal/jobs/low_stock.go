package jobs

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

const LowStockJobName = "low_stock"

type StockChecker interface {
	LowStock(ctx context.Context) ([]*model.Medicine, error)
}

// LowStockReport is the payload of a pharmacy.low_stock event.
type LowStockReport struct {
	Count     int               `json:"count"`
	Medicines []*model.Medicine `json:"medicines"`
}

// LowStockJob publishes the medicines at or below their reorder level.
type LowStockJob struct {
	pharmacy StockChecker
	events   event.Emitter
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewLowStockJob(pharmacy StockChecker, events event.Emitter, m *metrics.Metrics, log *logger.Logger) *LowStockJob {
	return &LowStockJob{
		pharmacy: pharmacy,
		events:   events,
		metrics:  m,
		logger:   log.With("low_stock_job"),
	}
}

func (j *LowStockJob) Name() string {
	return LowStockJobName
}

func (j *LowStockJob) Run(ctx context.Context) error {
	items, err := j.pharmacy.LowStock(ctx)
	if err != nil {
		j.metrics.JobRuns.WithLabelValues(LowStockJobName, "error").Inc()
		return fmt.Errorf("failed to check stock: %w", err)
	}

	j.metrics.LowStockItems.Set(float64(len(items)))
	j.metrics.JobRuns.WithLabelValues(LowStockJobName, "success").Inc()

	if len(items) == 0 {
		j.logger.Debug("stock levels fine")
		return nil
	}

	j.logger.Warn("medicines at or below reorder level", "count", len(items))
	j.events.Emit(ctx, model.EventLowStock, "", &LowStockReport{Count: len(items), Medicines: items})
	return nil
}
