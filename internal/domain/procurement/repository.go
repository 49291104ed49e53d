package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds a purchase order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its items
	Save(ctx context.Context, po *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, po *PurchaseOrder) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter PurchaseOrderFilter) (int64, error)

	// ExistsByOrderNumber checks whether an order number is taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}

// PurchaseOrderFilter extends shared.Filter with order-specific filters
type PurchaseOrderFilter struct {
	shared.Filter
	Status   *PurchaseOrderStatus
	Supplier string
}
