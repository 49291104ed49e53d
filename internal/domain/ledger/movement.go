package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockops/backend/internal/domain/shared"
)

// MovementType represents the kind of stock movement
type MovementType string

const (
	// MovementTypeInbound represents stock entering a bin (goods-in, PO receipt)
	MovementTypeInbound MovementType = "INBOUND"
	// MovementTypeOutbound represents stock leaving a bin (dispatch, damage out)
	MovementTypeOutbound MovementType = "OUTBOUND"
	// MovementTypeTransfer represents stock moving between bins
	MovementTypeTransfer MovementType = "TRANSFER"
	// MovementTypeAdjustment represents a manual stock correction
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	// MovementTypeReturn represents goods coming back from a customer or agent
	MovementTypeReturn MovementType = "RETURN"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is a known value
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeInbound,
		MovementTypeOutbound,
		MovementTypeTransfer,
		MovementTypeAdjustment,
		MovementTypeReturn:
		return true
	}
	return false
}

// SourceType represents the source document type for a movement
type SourceType string

const (
	// SourceTypePurchaseOrder is a purchase order receipt
	SourceTypePurchaseOrder SourceType = "PURCHASE_ORDER"
	// SourceTypeGoodsIn is a direct goods-in without a source document
	SourceTypeGoodsIn SourceType = "GOODS_IN"
	// SourceTypeGoodsOut is a direct goods-out without a source document
	SourceTypeGoodsOut SourceType = "GOODS_OUT"
	// SourceTypeReturn is a customer or agent return
	SourceTypeReturn SourceType = "RETURN"
	// SourceTypeAdjustment is a manual adjustment
	SourceTypeAdjustment SourceType = "ADJUSTMENT"
	// SourceTypeTransfer is a bin-to-bin transfer
	SourceTypeTransfer SourceType = "TRANSFER"
)

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// IsValid returns true if the source type is a known value
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypePurchaseOrder,
		SourceTypeGoodsIn,
		SourceTypeGoodsOut,
		SourceTypeReturn,
		SourceTypeAdjustment,
		SourceTypeTransfer:
		return true
	}
	return false
}

// Movement is an immutable ledger record of one stock change.
// Once created, movements are never updated or deleted - corrections are
// expressed as new adjustment movements.
//
// BinID names the bin whose balance the before/changed/after snapshot
// describes. It is nil for bin-less adjustments, where the snapshot
// describes the product's total available quantity instead.
type Movement struct {
	shared.BaseEntity
	Type             MovementType    `gorm:"type:varchar(20);not null;index:idx_movements_type"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_movements_product"`
	BinID            *uuid.UUID      `gorm:"type:uuid;index:idx_movements_bin"`
	Quantity         int64           `gorm:"not null"` // operation magnitude, always positive
	QuantityBefore   int64           `gorm:"not null"`
	QuantityChanged  int64           `gorm:"not null"` // signed; zero for return write-offs
	QuantityAfter    int64           `gorm:"not null"`
	SourceBinID      *uuid.UUID      `gorm:"type:uuid"`
	DestinationBinID *uuid.UUID      `gorm:"type:uuid"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SourceType       SourceType      `gorm:"type:varchar(30);not null;index:idx_movements_source"`
	SourceID         string          `gorm:"type:varchar(50);index:idx_movements_source"`
	TransferRef      *uuid.UUID      `gorm:"type:uuid;index"` // shared by the two rows of one transfer
	PerformedBy      uuid.UUID       `gorm:"type:uuid;not null"`
	Reason           string          `gorm:"type:varchar(50)"`
	Notes            string          `gorm:"type:varchar(255)"`
	OccurredAt       time.Time       `gorm:"type:timestamptz;not null;index:idx_movements_occurred"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "movements"
}

// NewMovement creates a new movement record.
// The before/changed/after triple must be consistent, this is what makes
// the ledger replayable.
func NewMovement(
	movementType MovementType,
	productID uuid.UUID,
	quantity int64,
	quantityBefore int64,
	quantityChanged int64,
	sourceType SourceType,
	performedBy uuid.UUID,
) (*Movement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Invalid source type")
	}
	if performedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Performed-by cannot be empty")
	}
	if quantityBefore < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Balance before cannot be negative")
	}

	return &Movement{
		BaseEntity:      shared.NewBaseEntity(),
		Type:            movementType,
		ProductID:       productID,
		Quantity:        quantity,
		QuantityBefore:  quantityBefore,
		QuantityChanged: quantityChanged,
		QuantityAfter:   quantityBefore + quantityChanged,
		SourceType:      sourceType,
		PerformedBy:     performedBy,
		OccurredAt:      time.Now(),
	}, nil
}

// WithBin sets the bin whose balance the snapshot describes
func (m *Movement) WithBin(binID uuid.UUID) *Movement {
	m.BinID = &binID
	return m
}

// WithSourceBin sets the bin the stock came from
func (m *Movement) WithSourceBin(binID uuid.UUID) *Movement {
	m.SourceBinID = &binID
	return m
}

// WithDestinationBin sets the bin the stock went to
func (m *Movement) WithDestinationBin(binID uuid.UUID) *Movement {
	m.DestinationBinID = &binID
	return m
}

// WithUnitCost sets the per-unit cost at movement time
func (m *Movement) WithUnitCost(cost decimal.Decimal) *Movement {
	m.UnitCost = cost
	return m
}

// WithSource sets the source document reference
func (m *Movement) WithSource(sourceType SourceType, sourceID string) *Movement {
	m.SourceType = sourceType
	m.SourceID = sourceID
	return m
}

// WithTransferRef links the movement to its transfer counterpart
func (m *Movement) WithTransferRef(ref uuid.UUID) *Movement {
	m.TransferRef = &ref
	return m
}

// WithReason sets the operational reason
func (m *Movement) WithReason(reason string) *Movement {
	m.Reason = reason
	return m
}

// WithNotes sets free-form notes
func (m *Movement) WithNotes(notes string) *Movement {
	m.Notes = notes
	return m
}

// WithOccurredAt overrides the movement timestamp
func (m *Movement) WithOccurredAt(t time.Time) *Movement {
	m.OccurredAt = t
	return m
}

// IsWriteOff returns true if the movement recorded goods without a stock change
func (m *Movement) IsWriteOff() bool {
	return m.QuantityChanged == 0
}

// TotalCost returns quantity times unit cost
func (m *Movement) TotalCost() decimal.Decimal {
	return decimal.NewFromInt(m.Quantity).Mul(m.UnitCost)
}
