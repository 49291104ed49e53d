package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appledger "github.com/stockops/backend/internal/application/ledger"
	"github.com/stockops/backend/internal/domain/procurement"
)

// CreateOrderItem is one line of a new purchase order
type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitCost  decimal.Decimal
}

// CreateOrderRequest opens a new purchase order
type CreateOrderRequest struct {
	OrderNumber      string
	Supplier         string
	DestinationBinID uuid.UUID
	Items            []CreateOrderItem
}

// ReceiveOrderItem is one received line of a shipment
type ReceiveOrderItem struct {
	ProductID uuid.UUID
	Quantity  int64
}

// ReceiveOrderRequest books a full or partial delivery against an order
type ReceiveOrderRequest struct {
	Items       []ReceiveOrderItem
	PerformedBy uuid.UUID
	Notes       string
}

// ReceiveOrderResponse reports the booked receipt
type ReceiveOrderResponse struct {
	OrderID   uuid.UUID                 `json:"order_id"`
	Status    string                    `json:"status"`
	Movements []appledger.MovementResult `json:"movements"`
}

// OrderItemResponse is the API view of one order line
type OrderItemResponse struct {
	ProductID        uuid.UUID       `json:"product_id"`
	QuantityOrdered  int64           `json:"quantity_ordered"`
	QuantityReceived int64           `json:"quantity_received"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	FullyReceived    bool            `json:"fully_received"`
}

// OrderResponse is the API view of a purchase order
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	OrderNumber      string              `json:"order_number"`
	Supplier         string              `json:"supplier"`
	DestinationBinID uuid.UUID           `json:"destination_bin_id"`
	Status           string              `json:"status"`
	TotalOrdered     int64               `json:"total_ordered"`
	TotalReceived    int64               `json:"total_received"`
	TotalCost        decimal.Decimal     `json:"total_cost"`
	CancelReason     string              `json:"cancel_reason,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	ConfirmedAt      *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt        *time.Time          `json:"shipped_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ListOrdersFilter is the query surface for purchase orders
type ListOrdersFilter struct {
	Page     int
	PageSize int
	Status   *string
	Supplier string
}

// ToOrderResponse maps a purchase order to its API view
func ToOrderResponse(po *procurement.PurchaseOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(po.Items))
	for idx := range po.Items {
		item := &po.Items[idx]
		items = append(items, OrderItemResponse{
			ProductID:        item.ProductID,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			UnitCost:         item.UnitCost,
			FullyReceived:    item.IsFullyReceived(),
		})
	}
	return OrderResponse{
		ID:               po.ID,
		OrderNumber:      po.OrderNumber,
		Supplier:         po.Supplier,
		DestinationBinID: po.DestinationBinID,
		Status:           po.Status.String(),
		TotalOrdered:     po.TotalOrdered(),
		TotalReceived:    po.TotalReceived(),
		TotalCost:        po.TotalCost(),
		CancelReason:     po.CancelReason,
		Items:            items,
		ConfirmedAt:      po.ConfirmedAt,
		ShippedAt:        po.ShippedAt,
		CompletedAt:      po.CompletedAt,
		CreatedAt:        po.CreatedAt,
	}
}

// ToOrderResponses maps a slice of purchase orders
func ToOrderResponses(orders []procurement.PurchaseOrder) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOrderResponse(&orders[idx]))
	}
	return responses
}
