package telemetry

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider using GORM queries.
// It queries the products and bins tables directly rather than going through
// the repositories, since metrics collection has no business rules to enforce.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GORM-based stock metrics provider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// GetLowStockCount returns the number of active products whose available
// quantity has fallen below their minimum stock level. Products with no
// minimum configured are excluded.
func (p *GormStockMetricsProvider) GetLowStockCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("status = ?", "ACTIVE").
		Where("minimum_stock_level > 0").
		Where("available_quantity < minimum_stock_level").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}

// GetBinUtilization returns the fill ratio (current stock over capacity)
// for every active bin, keyed by bin code.
func (p *GormStockMetricsProvider) GetBinUtilization(ctx context.Context) (map[string]float64, error) {
	var rows []struct {
		Code              string
		Capacity          int64
		CurrentStockCount int64
	}

	err := p.db.WithContext(ctx).
		Table("bins").
		Select("code, capacity, current_stock_count").
		Where("is_active = ?", true).
		Where("capacity > 0").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query bin utilization: %w", err)
	}

	utilization := make(map[string]float64, len(rows))
	for _, row := range rows {
		utilization[row.Code] = float64(row.CurrentStockCount) / float64(row.Capacity)
	}

	return utilization, nil
}

// Ensure GormStockMetricsProvider implements StockMetricsProvider.
var _ StockMetricsProvider = (*GormStockMetricsProvider)(nil)
