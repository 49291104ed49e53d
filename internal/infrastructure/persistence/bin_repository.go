package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/warehouse"
)

// GormBinRepository implements BinRepository using GORM
type GormBinRepository struct {
	db *gorm.DB
}

// NewGormBinRepository creates a new GormBinRepository
func NewGormBinRepository(db *gorm.DB) *GormBinRepository {
	return &GormBinRepository{db: db}
}

// FindByID finds a bin by its ID
func (r *GormBinRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Bin, error) {
	var bin warehouse.Bin
	if err := r.db.WithContext(ctx).First(&bin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	bin.MarkLoaded()
	return &bin, nil
}

// FindByCode finds a bin by its unique code
func (r *GormBinRepository) FindByCode(ctx context.Context, code string) (*warehouse.Bin, error) {
	var bin warehouse.Bin
	if err := r.db.WithContext(ctx).First(&bin, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	bin.MarkLoaded()
	return &bin, nil
}

// FindByIDs finds multiple bins by their IDs
func (r *GormBinRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]warehouse.Bin, error) {
	if len(ids) == 0 {
		return []warehouse.Bin{}, nil
	}

	var bins []warehouse.Bin
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&bins).Error; err != nil {
		return nil, err
	}
	for idx := range bins {
		bins[idx].MarkLoaded()
	}
	return bins, nil
}

// FindAll finds all bins matching the filter
func (r *GormBinRepository) FindAll(ctx context.Context, filter warehouse.BinFilter) ([]warehouse.Bin, error) {
	var bins []warehouse.Bin
	query := applyPagination(
		r.applyBinFilter(r.db.WithContext(ctx).Model(&warehouse.Bin{}), filter),
		filter.Filter,
	)

	if err := query.Find(&bins).Error; err != nil {
		return nil, err
	}
	return bins, nil
}

// Save creates or updates a bin
func (r *GormBinRepository) Save(ctx context.Context, bin *warehouse.Bin) error {
	return r.db.WithContext(ctx).Save(bin).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormBinRepository) SaveWithLock(ctx context.Context, bin *warehouse.Bin) error {
	result := r.db.WithContext(ctx).
		Model(bin).
		Where("id = ? AND version = ?", bin.ID, bin.LoadedVersion()).
		Updates(map[string]interface{}{
			"location":            bin.Location,
			"capacity":            bin.Capacity,
			"current_stock_count": bin.CurrentStockCount,
			"is_active":           bin.IsActive,
			"version":             bin.Version,
			"updated_at":          bin.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a bin
func (r *GormBinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Bin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bins matching the filter
func (r *GormBinRepository) Count(ctx context.Context, filter warehouse.BinFilter) (int64, error) {
	var count int64
	query := r.applyBinFilter(r.db.WithContext(ctx).Model(&warehouse.Bin{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether a bin with the code exists
func (r *GormBinRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.Bin{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormBinRepository) applyBinFilter(query *gorm.DB, filter warehouse.BinFilter) *gorm.DB {
	if filter.Owner != nil {
		query = query.Where("owner = ?", *filter.Owner)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.HasSpace {
		query = query.Where("current_stock_count < capacity")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR location ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormBinRepository implements BinRepository
var _ warehouse.BinRepository = (*GormBinRepository)(nil)
