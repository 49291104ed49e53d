package warehouse

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/shared"
)

// BinStock tracks the quantity of one product inside one bin.
// Rows are created lazily on first receipt. Consistency with the parent
// bin and product is enforced transactionally by the operations layer,
// so the row itself carries no version column.
type BinStock struct {
	shared.BaseEntity
	BinID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bin_stock_bin_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bin_stock_bin_product,priority:2"`
	Quantity  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BinStock) TableName() string {
	return "bin_stocks"
}

// NewBinStock creates a new empty bin stock row
func NewBinStock(binID, productID uuid.UUID) (*BinStock, error) {
	if binID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BIN", "Bin ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &BinStock{
		BaseEntity: shared.NewBaseEntity(),
		BinID:      binID,
		ProductID:  productID,
	}, nil
}

// Increase adds quantity to the row
func (s *BinStock) Increase(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	s.Quantity += quantity
	s.UpdatedAt = time.Now()
	return nil
}

// Decrease removes quantity from the row.
// Fails with INSUFFICIENT_STOCK rather than ever going below zero.
func (s *BinStock) Decrease(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Quantity < quantity {
		return shared.ErrInsufficientStock
	}

	s.Quantity -= quantity
	s.UpdatedAt = time.Now()
	return nil
}

// HasQuantity returns true if the row covers the requested quantity
func (s *BinStock) HasQuantity(quantity int64) bool {
	return s.Quantity >= quantity
}
