package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/shared"
)

// BinRepository defines the interface for bin persistence
type BinRepository interface {
	// FindByID finds a bin by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Bin, error)

	// FindByCode finds a bin by its unique code
	FindByCode(ctx context.Context, code string) (*Bin, error)

	// FindByIDs finds multiple bins by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Bin, error)

	// FindAll finds all bins matching the filter
	FindAll(ctx context.Context, filter BinFilter) ([]Bin, error)

	// Save creates or updates a bin
	Save(ctx context.Context, bin *Bin) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, bin *Bin) error

	// Delete deletes a bin
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts bins matching the filter
	Count(ctx context.Context, filter BinFilter) (int64, error)

	// ExistsByCode checks whether a bin with the code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// BinStockRepository defines the interface for bin stock persistence
type BinStockRepository interface {
	// FindByBinAndProduct finds the stock row for a bin-product combination
	FindByBinAndProduct(ctx context.Context, binID, productID uuid.UUID) (*BinStock, error)

	// FindByBin finds all stock rows in a bin
	FindByBin(ctx context.Context, binID uuid.UUID, filter shared.Filter) ([]BinStock, error)

	// FindByProduct finds all stock rows for a product across bins
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]BinStock, error)

	// GetOrCreate gets the existing stock row or creates an empty one
	GetOrCreate(ctx context.Context, binID, productID uuid.UUID) (*BinStock, error)

	// Save creates or updates a stock row
	Save(ctx context.Context, stock *BinStock) error

	// SumQuantityByProduct sums a product's quantity across all bins
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// DeleteEmpty removes zero-quantity rows for a bin
	DeleteEmpty(ctx context.Context, binID uuid.UUID) (int64, error)
}

// BinFilter extends shared.Filter with bin-specific filters
type BinFilter struct {
	shared.Filter
	Owner      *BinOwner
	ActiveOnly bool
	HasSpace   bool
}
