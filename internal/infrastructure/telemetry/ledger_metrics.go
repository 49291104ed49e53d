// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LedgerMetrics provides business metrics for the stock ledger.
// It tracks recorded movements, rejected batches, and stock health.
type LedgerMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	movementsRecordedTotal *Counter
	batchesRejectedTotal   *Counter
	itemFailuresTotal      *Counter
	conflictRetriesTotal   *Counter

	// Histogram metrics
	operationDuration *Histogram

	// Gauge metrics (point-in-time values)
	lowStockCount  *Gauge
	binUtilization *FloatGauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	stockProvider StockMetricsProvider
}

// StockMetricsProvider provides stock data for periodic metrics collection.
// This interface allows the telemetry layer to query stock state without
// depending on the domain packages directly.
type StockMetricsProvider interface {
	// GetLowStockCount returns the number of products below their minimum level
	GetLowStockCount(ctx context.Context) (int64, error)

	// GetBinUtilization returns stock count divided by capacity per active bin code
	GetBinUtilization(ctx context.Context) (map[string]float64, error)
}

// LedgerMetricsConfig holds configuration for ledger metrics.
type LedgerMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StockProvider   StockMetricsProvider
}

// NewLedgerMetrics creates a new LedgerMetrics instance.
func NewLedgerMetrics(cfg LedgerMetricsConfig) (*LedgerMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LedgerMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stockProvider: cfg.StockProvider,
	}

	var err error

	lm.movementsRecordedTotal, err = NewCounter(
		cfg.Meter,
		"stockops_movements_recorded_total",
		"Total number of ledger movements recorded",
		"{movements}",
	)
	if err != nil {
		return nil, err
	}

	lm.batchesRejectedTotal, err = NewCounter(
		cfg.Meter,
		"stockops_batches_rejected_total",
		"Total number of batches rejected during validation",
		"{batches}",
	)
	if err != nil {
		return nil, err
	}

	lm.itemFailuresTotal, err = NewCounter(
		cfg.Meter,
		"stockops_item_failures_total",
		"Total number of per-item validation failures",
		"{items}",
	)
	if err != nil {
		return nil, err
	}

	lm.conflictRetriesTotal, err = NewCounter(
		cfg.Meter,
		"stockops_conflict_retries_total",
		"Total number of optimistic lock conflicts that triggered a retry",
		"{retries}",
	)
	if err != nil {
		return nil, err
	}

	lm.operationDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "stockops_operation_duration_seconds",
		Description: "Duration of ledger operations",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	lm.lowStockCount, err = NewGauge(
		cfg.Meter,
		"stockops_low_stock_count",
		"Number of products below their minimum stock level",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	lm.binUtilization, err = NewFloatGauge(
		cfg.Meter,
		"stockops_bin_utilization_ratio",
		"Stock count divided by capacity per bin",
		"1",
	)
	if err != nil {
		return nil, err
	}

	return lm, nil
}

// =============================================================================
// Operation Metrics
// =============================================================================

// RecordMovement records one booked ledger movement.
// This should be called from the application layer after a commit.
func (lm *LedgerMetrics) RecordMovement(ctx context.Context, movementType, sourceType string) {
	lm.movementsRecordedTotal.Inc(ctx,
		AttrMovementType.String(movementType),
		AttrSourceType.String(sourceType),
	)
}

// RecordBatchRejected records a batch that failed validation.
func (lm *LedgerMetrics) RecordBatchRejected(ctx context.Context, operation string, failureCount int64) {
	lm.batchesRejectedTotal.Inc(ctx,
		AttrOperation.String(operation),
	)
	lm.itemFailuresTotal.Add(ctx, failureCount,
		AttrOperation.String(operation),
	)
}

// RecordConflictRetry records an optimistic lock conflict that was retried.
func (lm *LedgerMetrics) RecordConflictRetry(ctx context.Context, operation string) {
	lm.conflictRetriesTotal.Inc(ctx,
		AttrOperation.String(operation),
	)
}

// RecordOperationDuration records how long a ledger operation took.
func (lm *LedgerMetrics) RecordOperationDuration(ctx context.Context, operation string, d time.Duration) {
	lm.operationDuration.RecordDuration(ctx, d,
		AttrOperation.String(operation),
	)
}

// =============================================================================
// Stock Health Metrics
// =============================================================================

// RecordLowStockCount records the number of products below minimum threshold.
// This is a gauge metric that should be updated periodically.
func (lm *LedgerMetrics) RecordLowStockCount(ctx context.Context, count int64) {
	lm.lowStockCount.Record(ctx, count)
}

// RecordBinUtilization records the fill ratio for one bin.
func (lm *LedgerMetrics) RecordBinUtilization(ctx context.Context, binCode string, ratio float64) {
	lm.binUtilization.Record(ctx, ratio,
		AttrBinID.String(binCode),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// This is non-blocking - use Stop() to stop collection.
func (lm *LedgerMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	lm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go lm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (lm *LedgerMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	lm.collectStockMetrics(ctx)

	for {
		select {
		case <-lm.stopChan:
			lm.logger.Info("Stopping periodic ledger metrics collection")
			return
		case <-ctx.Done():
			lm.logger.Info("Context cancelled, stopping periodic ledger metrics collection")
			return
		case <-ticker.C:
			lm.collectStockMetrics(ctx)
		}
	}
}

// collectStockMetrics collects stock health gauge metrics.
func (lm *LedgerMetrics) collectStockMetrics(ctx context.Context) {
	if lm.stockProvider == nil {
		lm.logger.Debug("No stock provider configured, skipping stock metrics collection")
		return
	}

	lowStockCount, err := lm.stockProvider.GetLowStockCount(ctx)
	if err != nil {
		lm.logger.Warn("Failed to get low stock count", zap.Error(err))
	} else {
		lm.RecordLowStockCount(ctx, lowStockCount)
	}

	utilization, err := lm.stockProvider.GetBinUtilization(ctx)
	if err != nil {
		lm.logger.Warn("Failed to get bin utilization", zap.Error(err))
	} else {
		for binCode, ratio := range utilization {
			lm.RecordBinUtilization(ctx, binCode, ratio)
		}
	}
}

// Stop stops the periodic collection.
func (lm *LedgerMetrics) Stop() {
	lm.stopOnce.Do(func() {
		close(lm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewLedgerMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
