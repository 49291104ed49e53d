package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockops/backend/internal/domain/shared"
)

func TestMovementType_IsValid(t *testing.T) {
	tests := []struct {
		name         string
		movementType MovementType
		expected     bool
	}{
		{"INBOUND is valid", MovementTypeInbound, true},
		{"OUTBOUND is valid", MovementTypeOutbound, true},
		{"TRANSFER is valid", MovementTypeTransfer, true},
		{"ADJUSTMENT is valid", MovementTypeAdjustment, true},
		{"RETURN is valid", MovementTypeReturn, true},
		{"INVALID is not valid", MovementType("INVALID"), false},
		{"empty is not valid", MovementType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.movementType.IsValid())
		})
	}
}

func TestSourceType_IsValid(t *testing.T) {
	tests := []struct {
		name       string
		sourceType SourceType
		expected   bool
	}{
		{"PURCHASE_ORDER is valid", SourceTypePurchaseOrder, true},
		{"GOODS_IN is valid", SourceTypeGoodsIn, true},
		{"GOODS_OUT is valid", SourceTypeGoodsOut, true},
		{"RETURN is valid", SourceTypeReturn, true},
		{"ADJUSTMENT is valid", SourceTypeAdjustment, true},
		{"TRANSFER is valid", SourceTypeTransfer, true},
		{"INVALID is not valid", SourceType("INVALID"), false},
		{"empty is not valid", SourceType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sourceType.IsValid())
		})
	}
}

func TestNewMovement(t *testing.T) {
	productID := uuid.New()
	actorID := uuid.New()

	t.Run("computes quantity after from before and change", func(t *testing.T) {
		m, err := NewMovement(MovementTypeInbound, productID, 10, 90, 10, SourceTypeGoodsIn, actorID)
		require.NoError(t, err)

		assert.Equal(t, int64(90), m.QuantityBefore)
		assert.Equal(t, int64(10), m.QuantityChanged)
		assert.Equal(t, int64(100), m.QuantityAfter)
		assert.False(t, m.IsWriteOff())
	})

	t.Run("write-off keeps magnitude with zero change", func(t *testing.T) {
		m, err := NewMovement(MovementTypeReturn, productID, 3, 50, 0, SourceTypeReturn, actorID)
		require.NoError(t, err)

		assert.Equal(t, int64(3), m.Quantity)
		assert.Equal(t, int64(50), m.QuantityBefore)
		assert.Equal(t, int64(50), m.QuantityAfter)
		assert.True(t, m.IsWriteOff())
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewMovement(MovementType("BAD"), productID, 1, 0, 1, SourceTypeGoodsIn, actorID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_MOVEMENT_TYPE", err.(*shared.DomainError).Code)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewMovement(MovementTypeInbound, productID, 0, 0, 0, SourceTypeGoodsIn, actorID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_QUANTITY", err.(*shared.DomainError).Code)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewMovement(MovementTypeInbound, productID, -5, 0, -5, SourceTypeGoodsIn, actorID)
		require.Error(t, err)
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewMovement(MovementTypeInbound, uuid.Nil, 1, 0, 1, SourceTypeGoodsIn, actorID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_PRODUCT", err.(*shared.DomainError).Code)
	})

	t.Run("rejects missing actor", func(t *testing.T) {
		_, err := NewMovement(MovementTypeInbound, productID, 1, 0, 1, SourceTypeGoodsIn, uuid.Nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_ACTOR", err.(*shared.DomainError).Code)
	})

	t.Run("rejects negative balance before", func(t *testing.T) {
		_, err := NewMovement(MovementTypeInbound, productID, 1, -1, 1, SourceTypeGoodsIn, actorID)
		require.Error(t, err)
	})
}

func TestMovement_Builders(t *testing.T) {
	productID := uuid.New()
	actorID := uuid.New()
	binID := uuid.New()
	sourceBin := uuid.New()
	destBin := uuid.New()
	ref := uuid.New()

	m, err := NewMovement(MovementTypeTransfer, productID, 5, 20, -5, SourceTypeTransfer, actorID)
	require.NoError(t, err)

	m.WithBin(binID).
		WithSourceBin(sourceBin).
		WithDestinationBin(destBin).
		WithTransferRef(ref).
		WithUnitCost(decimal.NewFromFloat(2.5)).
		WithReason("TRANSFER").
		WithNotes("rebalance aisle 3")

	require.NotNil(t, m.BinID)
	assert.Equal(t, binID, *m.BinID)
	assert.Equal(t, sourceBin, *m.SourceBinID)
	assert.Equal(t, destBin, *m.DestinationBinID)
	assert.Equal(t, ref, *m.TransferRef)
	assert.Equal(t, "rebalance aisle 3", m.Notes)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(m.TotalCost()))
}

func TestReturnReason_RequiresRestock(t *testing.T) {
	tests := []struct {
		name     string
		reason   ReturnReason
		expected bool
	}{
		{"WRONG_ITEM restocks", ReturnReasonWrongItem, true},
		{"CUSTOMER_RETURN restocks", ReturnReasonCustomerReturn, true},
		{"DAMAGED is written off", ReturnReasonDamaged, false},
		{"EXPIRED is written off", ReturnReasonExpired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.RequiresRestock())
		})
	}
}

func TestAdjustmentReason_AllowsNegativeResult(t *testing.T) {
	tests := []struct {
		name     string
		reason   AdjustmentReason
		expected bool
	}{
		{"LOSS may go negative", AdjustmentReasonLoss, true},
		{"DAMAGE may go negative", AdjustmentReasonDamage, true},
		{"CORRECTION may not", AdjustmentReasonCorrection, false},
		{"FOUND may not", AdjustmentReasonFound, false},
		{"AUDIT may not", AdjustmentReasonAudit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.AllowsNegativeResult())
		})
	}
}
