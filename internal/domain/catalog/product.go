package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockops/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	// ProductStatusActive means the product can be moved through bins
	ProductStatusActive ProductStatus = "ACTIVE"
	// ProductStatusInactive means the product is temporarily not traded
	ProductStatusInactive ProductStatus = "INACTIVE"
	// ProductStatusDiscontinued means the product will not be restocked
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product is the aggregate root for catalog entries.
// AvailableQuantity is a denormalized total across all bins, kept in step
// with bin stock rows by the operations layer inside the same transaction.
type Product struct {
	shared.BaseAggregateRoot
	SKU               string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(255);not null"`
	Description       string          `gorm:"type:text"`
	Status            ProductStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	AvailableQuantity int64           `gorm:"not null;default:0"`
	MinimumStockLevel int64           `gorm:"not null;default:0"`
	MaximumStockLevel int64           `gorm:"not null;default:0"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(sku, name string, unitPrice, costPrice decimal.Decimal) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() || costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Status:            ProductStatusActive,
		UnitPrice:         unitPrice,
		CostPrice:         costPrice,
	}, nil
}

// IsActive returns true if the product can participate in stock operations
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// AddStock increases the available quantity
func (p *Product) AddStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	before := p.AvailableQuantity
	p.AvailableQuantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, p.AvailableQuantity))
	return nil
}

// RemoveStock decreases the available quantity.
// Fails with INSUFFICIENT_STOCK rather than ever going below zero.
func (p *Product) RemoveStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.AvailableQuantity < quantity {
		return shared.ErrInsufficientStock
	}

	before := p.AvailableQuantity
	p.AvailableQuantity -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, p.AvailableQuantity))
	if p.IsBelowMinimum() {
		p.AddDomainEvent(NewProductBelowMinimumEvent(p))
	}
	return nil
}

// ApplyAdjustment applies a signed stock delta from a manual adjustment.
// allowNegative is set for loss and damage reasons, where the recorded
// count may legitimately lag the physical one.
func (p *Product) ApplyAdjustment(delta int64, allowNegative bool) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	if p.AvailableQuantity+delta < 0 && !allowNegative {
		return shared.ErrNegativeInventory
	}

	before := p.AvailableQuantity
	p.AvailableQuantity += delta
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, before, p.AvailableQuantity))
	if p.IsBelowMinimum() {
		p.AddDomainEvent(NewProductBelowMinimumEvent(p))
	}
	return nil
}

// SetStockLevels sets the minimum and maximum stock thresholds
func (p *Product) SetStockLevels(minimum, maximum int64) error {
	if minimum < 0 || maximum < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock levels cannot be negative")
	}
	if maximum > 0 && minimum > maximum {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock level cannot exceed maximum")
	}

	p.MinimumStockLevel = minimum
	p.MaximumStockLevel = maximum
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Discontinue marks the product as discontinued
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.ErrInvalidState
	}
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsBelowMinimum returns true if available quantity is below the minimum threshold
func (p *Product) IsBelowMinimum() bool {
	return p.MinimumStockLevel > 0 && p.AvailableQuantity < p.MinimumStockLevel
}

// IsAboveMaximum returns true if available quantity is above the maximum threshold
func (p *Product) IsAboveMaximum() bool {
	return p.MaximumStockLevel > 0 && p.AvailableQuantity > p.MaximumStockLevel
}

// CanFulfill returns true if the available quantity covers the requested quantity
func (p *Product) CanFulfill(quantity int64) bool {
	return p.AvailableQuantity >= quantity
}
