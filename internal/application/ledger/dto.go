package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/ledger"
	"github.com/stockops/backend/internal/domain/warehouse"
)

// GoodsInItem is one line of a goods-in batch
type GoodsInItem struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitCost  decimal.Decimal
}

// GoodsInRequest books new stock into a destination bin
type GoodsInRequest struct {
	DestinationBinID uuid.UUID
	Source           string // SUPPLIER, FACTORY, RETURN, TRANSFER
	SourceID         string // optional source document reference
	PerformedBy      uuid.UUID
	Notes            string
	Items            []GoodsInItem
}

// GoodsOutItem is one line of a goods-out batch
type GoodsOutItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

// GoodsOutRequest dispatches stock from a source bin
type GoodsOutRequest struct {
	SourceBinID uuid.UUID
	Destination string // CUSTOMER, DELIVERY_AGENT, TRANSFER, DAMAGED
	SourceID    string
	PerformedBy uuid.UUID
	Notes       string
	Items       []GoodsOutItem
}

// ReturnItem is one line of a returns batch
type ReturnItem struct {
	ProductID uuid.UUID
	Quantity  int64
	Reason    string // DAMAGED, EXPIRED, WRONG_ITEM, CUSTOMER_RETURN
}

// ReturnsRequest books returned goods against a destination bin
type ReturnsRequest struct {
	DestinationBinID uuid.UUID
	SourceID         string
	PerformedBy      uuid.UUID
	Notes            string
	Items            []ReturnItem
}

// AdjustmentRequest corrects a product's recorded quantity
type AdjustmentRequest struct {
	ProductID   uuid.UUID
	BinID       *uuid.UUID // optional; bin stock is touched only for positive deltas
	Delta       int64
	Reason      string // CORRECTION, DAMAGE, LOSS, FOUND, AUDIT
	PerformedBy uuid.UUID
	Notes       string
}

// TransferRequest moves stock between two bins
type TransferRequest struct {
	SourceBinID      uuid.UUID
	DestinationBinID uuid.UUID
	ProductID        uuid.UUID
	Quantity         int64
	PerformedBy      uuid.UUID
	Notes            string
}

// MovementResult reports one appended ledger row
type MovementResult struct {
	MovementID      uuid.UUID  `json:"movement_id"`
	ProductID       uuid.UUID  `json:"product_id"`
	BinID           *uuid.UUID `json:"bin_id,omitempty"`
	QuantityBefore  int64      `json:"quantity_before"`
	QuantityChanged int64      `json:"quantity_changed"`
	QuantityAfter   int64      `json:"quantity_after"`
}

// OperationResponse is the result of a committed stock operation
type OperationResponse struct {
	Movements []MovementResult `json:"movements"`
}

// MovementResponse is the API view of one ledger row
type MovementResponse struct {
	ID               uuid.UUID       `json:"id"`
	Type             string          `json:"type"`
	ProductID        uuid.UUID       `json:"product_id"`
	BinID            *uuid.UUID      `json:"bin_id,omitempty"`
	Quantity         int64           `json:"quantity"`
	QuantityBefore   int64           `json:"quantity_before"`
	QuantityChanged  int64           `json:"quantity_changed"`
	QuantityAfter    int64           `json:"quantity_after"`
	SourceBinID      *uuid.UUID      `json:"source_bin_id,omitempty"`
	DestinationBinID *uuid.UUID      `json:"destination_bin_id,omitempty"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	SourceType       string          `json:"source_type"`
	SourceID         string          `json:"source_id,omitempty"`
	PerformedBy      uuid.UUID       `json:"performed_by"`
	Reason           string          `json:"reason,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	OccurredAt       time.Time       `json:"occurred_at"`
}

// ToMovementResponse maps a movement to its API view
func ToMovementResponse(m *ledger.Movement) MovementResponse {
	return MovementResponse{
		ID:               m.ID,
		Type:             m.Type.String(),
		ProductID:        m.ProductID,
		BinID:            m.BinID,
		Quantity:         m.Quantity,
		QuantityBefore:   m.QuantityBefore,
		QuantityChanged:  m.QuantityChanged,
		QuantityAfter:    m.QuantityAfter,
		SourceBinID:      m.SourceBinID,
		DestinationBinID: m.DestinationBinID,
		UnitCost:         m.UnitCost,
		SourceType:       m.SourceType.String(),
		SourceID:         m.SourceID,
		PerformedBy:      m.PerformedBy,
		Reason:           m.Reason,
		Notes:            m.Notes,
		OccurredAt:       m.OccurredAt,
	}
}

// ToMovementResponses maps a slice of movements
func ToMovementResponses(movements []ledger.Movement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		responses = append(responses, ToMovementResponse(&movements[idx]))
	}
	return responses
}

// MovementListFilter is the query surface for the movement history
type MovementListFilter struct {
	Page        int
	PageSize    int
	BinID       *uuid.UUID
	ProductID   *uuid.UUID
	Type        *string
	SourceType  *string
	SourceID    string
	PerformedBy *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
}

// BinStockResponse is the API view of one bin stock row
type BinStockResponse struct {
	BinID     uuid.UUID `json:"bin_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBinStockResponses maps bin stock rows
func ToBinStockResponses(stocks []warehouse.BinStock) []BinStockResponse {
	responses := make([]BinStockResponse, 0, len(stocks))
	for idx := range stocks {
		responses = append(responses, BinStockResponse{
			BinID:     stocks[idx].BinID,
			ProductID: stocks[idx].ProductID,
			Quantity:  stocks[idx].Quantity,
			UpdatedAt: stocks[idx].UpdatedAt,
		})
	}
	return responses
}

// ProductStockResponse aggregates a product's stock position
type ProductStockResponse struct {
	ProductID         uuid.UUID          `json:"product_id"`
	SKU               string             `json:"sku"`
	AvailableQuantity int64              `json:"available_quantity"`
	MinimumStockLevel int64              `json:"minimum_stock_level"`
	MaximumStockLevel int64              `json:"maximum_stock_level"`
	BelowMinimum      bool               `json:"below_minimum"`
	Bins              []BinStockResponse `json:"bins"`
}

// ToProductStockResponse maps a product and its bin rows
func ToProductStockResponse(product *catalog.Product, stocks []warehouse.BinStock) ProductStockResponse {
	return ProductStockResponse{
		ProductID:         product.ID,
		SKU:               product.SKU,
		AvailableQuantity: product.AvailableQuantity,
		MinimumStockLevel: product.MinimumStockLevel,
		MaximumStockLevel: product.MaximumStockLevel,
		BelowMinimum:      product.IsBelowMinimum(),
		Bins:              ToBinStockResponses(stocks),
	}
}

// ReconcileResponse reports drift between a product's recorded total and
// the sum of its bin stock rows
type ReconcileResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	RecordedTotal int64     `json:"recorded_total"`
	ComputedTotal int64     `json:"computed_total"`
	Drift         int64     `json:"drift"`
	Repaired      bool      `json:"repaired"`
}
