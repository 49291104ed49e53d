package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// FindBelowMinimum finds products below their minimum stock level
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// ExistsBySKU checks whether a product with the SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}

// ProductFilter extends shared.Filter with product-specific filters
type ProductFilter struct {
	shared.Filter
	Status       *ProductStatus
	BelowMinimum bool
	AboveMaximum bool
	HasStock     bool
}
