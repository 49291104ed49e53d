package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/warehouse"
)

// GormBinStockRepository implements BinStockRepository using GORM.
// Bin stock rows carry no version column, they are only ever written
// inside a transaction that locks their bin and product.
type GormBinStockRepository struct {
	db *gorm.DB
}

// NewGormBinStockRepository creates a new GormBinStockRepository
func NewGormBinStockRepository(db *gorm.DB) *GormBinStockRepository {
	return &GormBinStockRepository{db: db}
}

// FindByBinAndProduct finds the stock row for a bin-product combination
func (r *GormBinStockRepository) FindByBinAndProduct(ctx context.Context, binID, productID uuid.UUID) (*warehouse.BinStock, error) {
	var stock warehouse.BinStock
	if err := r.db.WithContext(ctx).
		Where("bin_id = ? AND product_id = ?", binID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByBin finds all stock rows in a bin
func (r *GormBinStockRepository) FindByBin(ctx context.Context, binID uuid.UUID, filter shared.Filter) ([]warehouse.BinStock, error) {
	var stocks []warehouse.BinStock
	query := applyPagination(
		r.db.WithContext(ctx).Model(&warehouse.BinStock{}).Where("bin_id = ?", binID),
		filter,
	)

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByProduct finds all stock rows for a product across bins
func (r *GormBinStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]warehouse.BinStock, error) {
	var stocks []warehouse.BinStock
	query := applyPagination(
		r.db.WithContext(ctx).Model(&warehouse.BinStock{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetOrCreate gets the existing stock row or creates an empty one
func (r *GormBinStockRepository) GetOrCreate(ctx context.Context, binID, productID uuid.UUID) (*warehouse.BinStock, error) {
	stock, err := r.FindByBinAndProduct(ctx, binID, productID)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	stock, err = warehouse.NewBinStock(binID, productID)
	if err != nil {
		return nil, err
	}

	// ON CONFLICT covers the race where another transaction creates the
	// row between the lookup and the insert
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bin_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(stock).Error; err != nil {
		return nil, err
	}

	if stock.ID == uuid.Nil {
		return r.FindByBinAndProduct(ctx, binID, productID)
	}
	return stock, nil
}

// Save creates or updates a stock row
func (r *GormBinStockRepository) Save(ctx context.Context, stock *warehouse.BinStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// SumQuantityByProduct sums a product's quantity across all bins
func (r *GormBinStockRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&warehouse.BinStock{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("product_id = ?", productID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// DeleteEmpty removes zero-quantity rows for a bin
func (r *GormBinStockRepository) DeleteEmpty(ctx context.Context, binID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("bin_id = ? AND quantity = 0", binID).
		Delete(&warehouse.BinStock{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormBinStockRepository implements BinStockRepository
var _ warehouse.BinStockRepository = (*GormBinStockRepository)(nil)
