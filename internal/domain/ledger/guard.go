package ledger

import (
	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/warehouse"
)

// Guard is a stateless domain service that answers whether a proposed
// stock change would violate an invariant. It never mutates anything,
// callers apply the change only after the guard passes.
type Guard struct{}

// NewGuard creates a new invariant guard
func NewGuard() *Guard {
	return &Guard{}
}

// CanAdd checks whether a bin can take the quantity without exceeding
// its capacity
func (g *Guard) CanAdd(bin *warehouse.Bin, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !bin.CanAccommodate(quantity) {
		return shared.ErrCapacityExceeded
	}
	return nil
}

// CanRemove checks whether a bin stock row covers the quantity
func (g *Guard) CanRemove(stock *warehouse.BinStock, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !stock.HasQuantity(quantity) {
		return shared.ErrInsufficientStock
	}
	return nil
}

// CanAdjust checks whether a signed delta may be applied to a product's
// available quantity. Loss and damage adjustments may drive the recorded
// count negative, every other reason is rejected at zero.
func (g *Guard) CanAdjust(product *catalog.Product, delta int64, reason AdjustmentReason) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}
	if !reason.IsValid() {
		return shared.NewDomainError("INVALID_REASON", "Invalid adjustment reason")
	}
	if product.AvailableQuantity+delta < 0 && !reason.AllowsNegativeResult() {
		return shared.ErrNegativeInventory
	}
	return nil
}

// CapacityTracker validates a sequence of additions against one bin,
// counting earlier items in the same batch against the remaining space.
type CapacityTracker struct {
	bin     *warehouse.Bin
	pending int64
}

// NewCapacityTracker creates a tracker for a destination bin
func NewCapacityTracker(bin *warehouse.Bin) *CapacityTracker {
	return &CapacityTracker{bin: bin}
}

// TryAdd reserves quantity against the bin's remaining capacity
func (t *CapacityTracker) TryAdd(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !t.bin.CanAccommodate(t.pending + quantity) {
		return shared.ErrCapacityExceeded
	}
	t.pending += quantity
	return nil
}

// Pending returns the total quantity reserved so far
func (t *CapacityTracker) Pending() int64 {
	return t.pending
}

// BalanceTracker validates a sequence of removals against one balance,
// counting earlier items in the same batch against what is left.
type BalanceTracker struct {
	balance int64
}

// NewBalanceTracker creates a tracker starting from the current balance
func NewBalanceTracker(balance int64) *BalanceTracker {
	return &BalanceTracker{balance: balance}
}

// TryRemove reserves quantity against the remaining balance
func (t *BalanceTracker) TryRemove(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if t.balance < quantity {
		return shared.ErrInsufficientStock
	}
	t.balance -= quantity
	return nil
}

// Remaining returns the balance left after reservations
func (t *BalanceTracker) Remaining() int64 {
	return t.balance
}
