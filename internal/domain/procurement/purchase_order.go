package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockops/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the state of a purchase order
type PurchaseOrderStatus string

const (
	// PurchaseOrderStatusPending is a draft order awaiting confirmation
	PurchaseOrderStatusPending PurchaseOrderStatus = "PENDING"
	// PurchaseOrderStatusConfirmed means the supplier accepted the order
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "CONFIRMED"
	// PurchaseOrderStatusShipped means the goods are on the way
	PurchaseOrderStatusShipped PurchaseOrderStatus = "SHIPPED"
	// PurchaseOrderStatusPartiallyReceived means some items arrived
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	// PurchaseOrderStatusReceived means every item arrived in full
	PurchaseOrderStatusReceived PurchaseOrderStatus = "RECEIVED"
	// PurchaseOrderStatusCancelled means the order was abandoned
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending,
		PurchaseOrderStatusConfirmed,
		PurchaseOrderStatusShipped,
		PurchaseOrderStatusPartiallyReceived,
		PurchaseOrderStatusReceived,
		PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo returns true if the status may move to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusPending:
		return target == PurchaseOrderStatusConfirmed || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusConfirmed:
		return target == PurchaseOrderStatusShipped || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusShipped:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived
	}
	return false
}

// CanReceive returns true if goods may be booked in against this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusShipped || s == PurchaseOrderStatusPartiallyReceived
}

// IsFinal returns true for terminal statuses
func (s PurchaseOrderStatus) IsFinal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// PurchaseOrderItem is one ordered line. The unit cost is locked at order
// time and used for all receipts against the line.
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityOrdered  int64           `gorm:"not null"`
	QuantityReceived int64           `gorm:"not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new order line
func NewPurchaseOrderItem(productID uuid.UUID, quantityOrdered int64, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantityOrdered <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &PurchaseOrderItem{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		QuantityOrdered: quantityOrdered,
		UnitCost:        unitCost,
	}, nil
}

// AddReceivedQuantity books a received quantity against the line
func (i *PurchaseOrderItem) AddReceivedQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if i.QuantityReceived+quantity > i.QuantityOrdered {
		return shared.NewDomainError("QUANTITY_EXCEEDED", "Received quantity exceeds ordered quantity")
	}

	i.QuantityReceived += quantity
	i.UpdatedAt = time.Now()
	return nil
}

// IsFullyReceived returns true if the line arrived in full
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.QuantityReceived >= i.QuantityOrdered
}

// RemainingQuantity returns what is still expected
func (i *PurchaseOrderItem) RemainingQuantity() int64 {
	return i.QuantityOrdered - i.QuantityReceived
}

// PurchaseOrder is the aggregate root for inbound procurement
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber      string              `gorm:"type:varchar(64);not null;uniqueIndex"`
	Supplier         string              `gorm:"type:varchar(255);not null"`
	DestinationBinID uuid.UUID           `gorm:"type:uuid;not null"`
	Status           PurchaseOrderStatus `gorm:"type:varchar(30);not null;default:'PENDING'"`
	ConfirmedAt      *time.Time
	ShippedAt        *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string              `gorm:"type:varchar(255)"`
	Items            []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new pending purchase order
func NewPurchaseOrder(orderNumber, supplier string, destinationBinID uuid.UUID, items []PurchaseOrderItem) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplier == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier cannot be empty")
	}
	if destinationBinID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BIN", "Destination bin cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Purchase order must have at least one item")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Supplier:          supplier,
		DestinationBinID:  destinationBinID,
		Status:            PurchaseOrderStatusPending,
		Items:             items,
	}
	for idx := range po.Items {
		po.Items[idx].PurchaseOrderID = po.ID
	}
	return po, nil
}

// Confirm moves the order from pending to confirmed
func (po *PurchaseOrder) Confirm() error {
	if !po.Status.CanTransitionTo(PurchaseOrderStatusConfirmed) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	po.Status = PurchaseOrderStatusConfirmed
	po.ConfirmedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()
	return nil
}

// MarkShipped moves the order from confirmed to shipped
func (po *PurchaseOrder) MarkShipped() error {
	if !po.Status.CanTransitionTo(PurchaseOrderStatusShipped) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	po.Status = PurchaseOrderStatusShipped
	po.ShippedAt = &now
	po.UpdatedAt = now
	po.IncrementVersion()
	return nil
}

// Cancel abandons the order. Only pending and confirmed orders can be
// cancelled, goods in transit must still be received.
func (po *PurchaseOrder) Cancel(reason string) error {
	if !po.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	po.Status = PurchaseOrderStatusCancelled
	po.CancelledAt = &now
	po.CancelReason = reason
	po.UpdatedAt = now
	po.IncrementVersion()
	return nil
}

// ReceiveItem describes one received line of a delivery
type ReceiveItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

// ReceivedLine reports what was booked against one order line
type ReceivedLine struct {
	ProductID        uuid.UUID
	Quantity         int64
	UnitCost         decimal.Decimal
	RemainingOrdered int64
}

// Receive books a delivery against the order and moves the status to
// received or partially received. Unknown products and over-receipts
// reject the whole delivery.
func (po *PurchaseOrder) Receive(items []ReceiveItem) ([]ReceivedLine, error) {
	if !po.Status.CanReceive() {
		return nil, shared.ErrInvalidState
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Delivery must have at least one item")
	}

	lines := make([]ReceivedLine, 0, len(items))
	for _, item := range items {
		orderItem := po.findItem(item.ProductID)
		if orderItem == nil {
			return nil, shared.NewDomainError("PRODUCT_NOT_ORDERED", "Product is not part of this purchase order")
		}
		if err := orderItem.AddReceivedQuantity(item.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, ReceivedLine{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			UnitCost:         orderItem.UnitCost,
			RemainingOrdered: orderItem.RemainingQuantity(),
		})
	}

	now := time.Now()
	if po.isFullyReceived() {
		po.Status = PurchaseOrderStatusReceived
		po.CompletedAt = &now
	} else {
		po.Status = PurchaseOrderStatusPartiallyReceived
	}
	po.UpdatedAt = now
	po.IncrementVersion()

	return lines, nil
}

func (po *PurchaseOrder) findItem(productID uuid.UUID) *PurchaseOrderItem {
	for idx := range po.Items {
		if po.Items[idx].ProductID == productID {
			return &po.Items[idx]
		}
	}
	return nil
}

func (po *PurchaseOrder) isFullyReceived() bool {
	for idx := range po.Items {
		if !po.Items[idx].IsFullyReceived() {
			return false
		}
	}
	return true
}

// TotalOrdered returns the total ordered quantity across lines
func (po *PurchaseOrder) TotalOrdered() int64 {
	var total int64
	for idx := range po.Items {
		total += po.Items[idx].QuantityOrdered
	}
	return total
}

// TotalReceived returns the total received quantity across lines
func (po *PurchaseOrder) TotalReceived() int64 {
	var total int64
	for idx := range po.Items {
		total += po.Items[idx].QuantityReceived
	}
	return total
}

// TotalCost returns the ordered value of the purchase order
func (po *PurchaseOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for idx := range po.Items {
		line := decimal.NewFromInt(po.Items[idx].QuantityOrdered).Mul(po.Items[idx].UnitCost)
		total = total.Add(line)
	}
	return total
}
