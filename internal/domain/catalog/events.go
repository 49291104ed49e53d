package catalog

import (
	"github.com/stockops/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeProductStockChanged = "catalog.product.stock_changed"
	EventTypeProductBelowMinimum = "catalog.product.below_minimum"
)

// ProductStockChangedEvent is emitted whenever the denormalized total changes
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	SKU            string `json:"sku"`
	QuantityBefore int64  `json:"quantity_before"`
	QuantityAfter  int64  `json:"quantity_after"`
}

// NewProductStockChangedEvent creates a new stock changed event
func NewProductStockChangedEvent(product *Product, before, after int64) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, "Product", product.ID),
		SKU:             product.SKU,
		QuantityBefore:  before,
		QuantityAfter:   after,
	}
}

// ProductBelowMinimumEvent is emitted when available stock drops under the threshold
type ProductBelowMinimumEvent struct {
	shared.BaseDomainEvent
	SKU               string `json:"sku"`
	AvailableQuantity int64  `json:"available_quantity"`
	MinimumStockLevel int64  `json:"minimum_stock_level"`
}

// NewProductBelowMinimumEvent creates a new below minimum event
func NewProductBelowMinimumEvent(product *Product) *ProductBelowMinimumEvent {
	return &ProductBelowMinimumEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeProductBelowMinimum, "Product", product.ID),
		SKU:               product.SKU,
		AvailableQuantity: product.AvailableQuantity,
		MinimumStockLevel: product.MinimumStockLevel,
	}
}
