package warehouse

import (
	"time"

	"github.com/stockops/backend/internal/domain/shared"
)

// BinOwner identifies who operates a bin
type BinOwner string

const (
	// BinOwnerWarehouse is a fixed location inside a warehouse
	BinOwnerWarehouse BinOwner = "WAREHOUSE"
	// BinOwnerDeliveryAgent is a mobile bin carried by a delivery agent
	BinOwnerDeliveryAgent BinOwner = "DELIVERY_AGENT"
	// BinOwnerQuarantine holds goods pending inspection or disposal
	BinOwnerQuarantine BinOwner = "QUARANTINE"
)

// String returns the string representation of BinOwner
func (o BinOwner) String() string {
	return string(o)
}

// IsValid returns true if the owner is a known value
func (o BinOwner) IsValid() bool {
	switch o {
	case BinOwnerWarehouse, BinOwnerDeliveryAgent, BinOwnerQuarantine:
		return true
	}
	return false
}

// Bin is the aggregate root for a physical storage location.
// CurrentStockCount mirrors the sum of its bin stock rows and is updated
// in the same transaction, so its version guards concurrent bin mutations.
type Bin struct {
	shared.BaseAggregateRoot
	Code              string   `gorm:"type:varchar(64);not null;uniqueIndex"`
	Location          string   `gorm:"type:varchar(255)"`
	Owner             BinOwner `gorm:"type:varchar(20);not null"`
	Capacity          int64    `gorm:"not null"`
	CurrentStockCount int64    `gorm:"not null;default:0"`
	IsActive          bool     `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Bin) TableName() string {
	return "bins"
}

// NewBin creates a new empty bin
func NewBin(code, location string, owner BinOwner, capacity int64) (*Bin, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Bin code cannot be empty")
	}
	if !owner.IsValid() {
		return nil, shared.NewDomainError("INVALID_OWNER", "Invalid bin owner")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Bin capacity must be positive")
	}

	return &Bin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Location:          location,
		Owner:             owner,
		Capacity:          capacity,
		IsActive:          true,
	}, nil
}

// RemainingCapacity returns how many units the bin can still take
func (b *Bin) RemainingCapacity() int64 {
	remaining := b.Capacity - b.CurrentStockCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanAccommodate returns true if the bin can take the quantity without
// exceeding its capacity
func (b *Bin) CanAccommodate(quantity int64) bool {
	return b.CurrentStockCount+quantity <= b.Capacity
}

// AddCount increases the aggregate stock count of the bin
func (b *Bin) AddCount(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !b.CanAccommodate(quantity) {
		return shared.ErrCapacityExceeded
	}

	b.CurrentStockCount += quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// RemoveCount decreases the aggregate stock count of the bin
func (b *Bin) RemoveCount(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if b.CurrentStockCount < quantity {
		return shared.ErrInsufficientStock
	}

	b.CurrentStockCount -= quantity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Resize changes the bin capacity. Shrinking below the current stock
// count is rejected.
func (b *Bin) Resize(capacity int64) error {
	if capacity <= 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Bin capacity must be positive")
	}
	if capacity < b.CurrentStockCount {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be below current stock count")
	}

	b.Capacity = capacity
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Activate enables the bin for stock operations
func (b *Bin) Activate() {
	if !b.IsActive {
		b.IsActive = true
		b.UpdatedAt = time.Now()
		b.IncrementVersion()
	}
}

// Deactivate disables the bin. Deactivated bins reject new goods but can
// still be emptied.
func (b *Bin) Deactivate() {
	if b.IsActive {
		b.IsActive = false
		b.UpdatedAt = time.Now()
		b.IncrementVersion()
	}
}

// IsEmpty returns true if the bin holds no stock
func (b *Bin) IsEmpty() bool {
	return b.CurrentStockCount == 0
}
