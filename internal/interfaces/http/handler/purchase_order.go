package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procurementapp "github.com/stockops/backend/internal/application/procurement"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	receiving *procurementapp.ReceivingService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(receiving *procurementapp.ReceivingService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		receiving: receiving,
	}
}

// ===================== Request Types for Swagger =====================

// CreateOrderItemRequest represents one line of a new purchase order
// @Description One ordered item
type CreateOrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0" example:"100"`
	UnitCost  float64 `json:"unit_cost" binding:"gte=0" example:"12.75"`
}

// CreateOrderRequest represents a request to open a purchase order
// @Description Request body for creating a purchase order
type CreateOrderRequest struct {
	OrderNumber      string                   `json:"order_number" binding:"required" example:"PO-2026-001"`
	Supplier         string                   `json:"supplier" binding:"required" example:"Acme Wholesale"`
	DestinationBinID string                   `json:"destination_bin_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	Items            []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveOrderItemRequest represents one received line of a shipment
// @Description One received item
type ReceiveOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0" example:"40"`
}

// ReceiveOrderRequest represents a request to book a delivery
// @Description Request body for receiving a full or partial delivery
type ReceiveOrderRequest struct {
	Items []ReceiveOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes string                    `json:"notes" example:"Partial delivery, rest to follow"`
}

// CancelOrderRequest represents a request to cancel an order
// @Description Request body for cancelling a purchase order
type CancelOrderRequest struct {
	Reason string `json:"reason" example:"Supplier out of stock"`
}

// OrderListQuery represents the purchase order list query parameters
// @Description Query parameters for listing purchase orders
type OrderListQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Supplier string `form:"supplier"`
}

// ===================== Handlers =====================

// Create godoc
// @ID           createPurchaseOrder
// @Summary      Create a purchase order
// @Description  Opens a new purchase order in PENDING state.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "Purchase order"
// @Success      201 {object} APIResponse[procurementapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	binID, err := uuid.Parse(req.DestinationBinID)
	if err != nil {
		h.BadRequest(c, "Invalid destination bin ID format")
		return
	}

	items := make([]procurementapp.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		items = append(items, procurementapp.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitCost:  toDecimal(item.UnitCost),
		})
	}

	order, err := h.receiving.Create(c.Request.Context(), procurementapp.CreateOrderRequest{
		OrderNumber:      req.OrderNumber,
		Supplier:         req.Supplier,
		DestinationBinID: binID,
		Items:            items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get godoc
// @ID           getPurchaseOrder
// @Summary      Get a purchase order
// @Description  Retrieves a purchase order with its items.
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[procurementapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	order, err := h.receiving.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Description  Lists purchase orders with filters and pagination.
// @Tags         purchase-orders
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        status query string false "Order status" example(CONFIRMED)
// @Param        supplier query string false "Supplier name filter"
// @Success      200 {object} APIResponse[[]procurementapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var query OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	filter := procurementapp.ListOrdersFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Supplier: query.Supplier,
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	page, err := h.receiving.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Confirm godoc
// @ID           confirmPurchaseOrder
// @Summary      Confirm a purchase order
// @Description  Moves a PENDING order to CONFIRMED.
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[procurementapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /purchase-orders/{id}/confirm [post]
func (h *PurchaseOrderHandler) Confirm(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	order, err := h.receiving.Confirm(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Ship godoc
// @ID           shipPurchaseOrder
// @Summary      Mark a purchase order as shipped
// @Description  Moves a CONFIRMED order to SHIPPED.
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[procurementapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /purchase-orders/{id}/ship [post]
func (h *PurchaseOrderHandler) Ship(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	order, err := h.receiving.Ship(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @ID           cancelPurchaseOrder
// @Summary      Cancel a purchase order
// @Description  Cancels an order that has not yet received any stock.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID" format(uuid)
// @Param        request body CancelOrderRequest false "Cancel options"
// @Success      200 {object} APIResponse[procurementapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	order, err := h.receiving.Cancel(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Receive godoc
// @ID           receivePurchaseOrder
// @Summary      Receive a delivery against a purchase order
// @Description  Books a full or partial delivery. The receipt and the resulting goods-in movements commit in one transaction.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        id path string true "Purchase order ID" format(uuid)
// @Param        request body ReceiveOrderRequest true "Received items"
// @Success      200 {object} APIResponse[procurementapp.ReceiveOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req ReceiveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]procurementapp.ReceiveOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		items = append(items, procurementapp.ReceiveOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	receipt, err := h.receiving.Receive(c.Request.Context(), orderID, procurementapp.ReceiveOrderRequest{
		Items:       items,
		PerformedBy: performedBy,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Movements godoc
// @ID           getPurchaseOrderMovements
// @Summary      Get the movements booked against a purchase order
// @Description  Retrieves all ledger movements created by receipts of this order, ordered by occurrence.
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledgerapp.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /purchase-orders/{id}/movements [get]
func (h *PurchaseOrderHandler) Movements(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	movements, err := h.receiving.Movements(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// RegisterRoutes registers all purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/confirm", h.Confirm)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/receive", h.Receive)
		orders.GET("/:id/movements", h.Movements)
	}
}
