package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/stockops/backend/internal/application/ledger"
)

// LedgerHandler handles stock ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	operations *ledgerapp.OperationsService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(operations *ledgerapp.OperationsService) *LedgerHandler {
	return &LedgerHandler{
		operations: operations,
	}
}

// ===================== Request/Response Types for Swagger =====================

// GoodsInItemRequest represents one line of a goods-in batch
// @Description One item of a goods-in batch
type GoodsInItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0" example:"50"`
	UnitCost  float64 `json:"unit_cost" binding:"gte=0" example:"15.50"`
}

// GoodsInRequest represents a request to book new stock into a bin
// @Description Request body for booking a goods-in batch
type GoodsInRequest struct {
	DestinationBinID string               `json:"destination_bin_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	Source           string               `json:"source" binding:"required" example:"SUPPLIER"`
	SourceID         string               `json:"source_id" example:"PO-2026-001"`
	Notes            string               `json:"notes" example:"Morning delivery"`
	Items            []GoodsInItemRequest `json:"items" binding:"required,min=1,dive"`
}

// GoodsOutItemRequest represents one line of a goods-out batch
// @Description One item of a goods-out batch
type GoodsOutItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0" example:"10"`
}

// GoodsOutRequest represents a request to dispatch stock from a bin
// @Description Request body for booking a goods-out batch
type GoodsOutRequest struct {
	SourceBinID string                `json:"source_bin_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	Destination string                `json:"destination" binding:"required" example:"CUSTOMER"`
	SourceID    string                `json:"source_id" example:"SO-2026-001"`
	Notes       string                `json:"notes" example:"Order dispatch"`
	Items       []GoodsOutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnItemRequest represents one line of a returns batch
// @Description One item of a returns batch
type ReturnItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0" example:"2"`
	Reason    string `json:"reason" binding:"required" example:"CUSTOMER_RETURN"`
}

// ReturnsRequest represents a request to book returned goods
// @Description Request body for booking a returns batch
type ReturnsRequest struct {
	DestinationBinID string              `json:"destination_bin_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	SourceID         string              `json:"source_id" example:"SO-2026-001"`
	Notes            string              `json:"notes" example:"Returned by courier"`
	Items            []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AdjustmentRequest represents a request to correct a recorded quantity
// @Description Request body for a stock adjustment
type AdjustmentRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	BinID     string `json:"bin_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	Delta     int64  `json:"delta" binding:"required" example:"-3"`
	Reason    string `json:"reason" binding:"required" example:"AUDIT"`
	Notes     string `json:"notes" example:"Cycle count variance"`
}

// TransferRequest represents a request to move stock between bins
// @Description Request body for a bin-to-bin transfer
type TransferRequest struct {
	SourceBinID      string `json:"source_bin_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	DestinationBinID string `json:"destination_bin_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	ProductID        string `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity         int64  `json:"quantity" binding:"required,gt=0" example:"5"`
	Notes            string `json:"notes" example:"Rebalancing"`
}

// ReconcileRequest represents a request to reconcile a product's totals
// @Description Request body for a reconcile run
type ReconcileRequest struct {
	Repair bool `json:"repair" example:"false"`
}

// MovementListQuery represents the movement history query parameters
// @Description Query parameters for listing movements
type MovementListQuery struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	BinID       string `form:"bin_id" binding:"omitempty,uuid"`
	ProductID   string `form:"product_id" binding:"omitempty,uuid"`
	Type        string `form:"type"`
	SourceType  string `form:"source_type"`
	SourceID    string `form:"source_id"`
	PerformedBy string `form:"performed_by" binding:"omitempty,uuid"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
}

// ===================== Operation Handlers =====================

// GoodsIn godoc
// @ID           ledgerGoodsIn
// @Summary      Book a goods-in batch
// @Description  Books new stock into a destination bin. The whole batch commits or is rejected with the complete per-item failure list.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        request body GoodsInRequest true "Goods-in batch"
// @Success      201 {object} APIResponse[ledgerapp.OperationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /ledger/goods-in [post]
func (h *LedgerHandler) GoodsIn(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	var req GoodsInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	binID, err := uuid.Parse(req.DestinationBinID)
	if err != nil {
		h.BadRequest(c, "Invalid destination bin ID format")
		return
	}

	items := make([]ledgerapp.GoodsInItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		items = append(items, ledgerapp.GoodsInItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitCost:  toDecimal(item.UnitCost),
		})
	}

	resp, err := h.operations.GoodsIn(c.Request.Context(), ledgerapp.GoodsInRequest{
		DestinationBinID: binID,
		Source:           req.Source,
		SourceID:         req.SourceID,
		PerformedBy:      performedBy,
		Notes:            req.Notes,
		Items:            items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GoodsOut godoc
// @ID           ledgerGoodsOut
// @Summary      Book a goods-out batch
// @Description  Dispatches stock from a source bin. The whole batch commits or is rejected with the complete per-item failure list.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        request body GoodsOutRequest true "Goods-out batch"
// @Success      201 {object} APIResponse[ledgerapp.OperationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /ledger/goods-out [post]
func (h *LedgerHandler) GoodsOut(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	var req GoodsOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	binID, err := uuid.Parse(req.SourceBinID)
	if err != nil {
		h.BadRequest(c, "Invalid source bin ID format")
		return
	}

	items := make([]ledgerapp.GoodsOutItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		items = append(items, ledgerapp.GoodsOutItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	resp, err := h.operations.GoodsOut(c.Request.Context(), ledgerapp.GoodsOutRequest{
		SourceBinID: binID,
		Destination: req.Destination,
		SourceID:    req.SourceID,
		PerformedBy: performedBy,
		Notes:       req.Notes,
		Items:       items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Returns godoc
// @ID           ledgerReturns
// @Summary      Book a returns batch
// @Description  Books returned goods into a destination bin with a per-item reason.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        request body ReturnsRequest true "Returns batch"
// @Success      201 {object} APIResponse[ledgerapp.OperationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /ledger/returns [post]
func (h *LedgerHandler) Returns(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	var req ReturnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	binID, err := uuid.Parse(req.DestinationBinID)
	if err != nil {
		h.BadRequest(c, "Invalid destination bin ID format")
		return
	}

	items := make([]ledgerapp.ReturnItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		items = append(items, ledgerapp.ReturnItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
		})
	}

	resp, err := h.operations.Returns(c.Request.Context(), ledgerapp.ReturnsRequest{
		DestinationBinID: binID,
		SourceID:         req.SourceID,
		PerformedBy:      performedBy,
		Notes:            req.Notes,
		Items:            items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Adjust godoc
// @ID           ledgerAdjust
// @Summary      Adjust a product's recorded quantity
// @Description  Corrects a product's recorded quantity by a signed delta with a mandatory reason.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        request body AdjustmentRequest true "Adjustment"
// @Success      201 {object} APIResponse[ledgerapp.OperationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /ledger/adjustments [post]
func (h *LedgerHandler) Adjust(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	var req AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	appReq := ledgerapp.AdjustmentRequest{
		ProductID:   productID,
		Delta:       req.Delta,
		Reason:      req.Reason,
		PerformedBy: performedBy,
		Notes:       req.Notes,
	}
	if req.BinID != "" {
		binID, err := uuid.Parse(req.BinID)
		if err != nil {
			h.BadRequest(c, "Invalid bin ID format")
			return
		}
		appReq.BinID = &binID
	}

	resp, err := h.operations.Adjust(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Transfer godoc
// @ID           ledgerTransfer
// @Summary      Transfer stock between bins
// @Description  Moves a quantity of one product from a source bin to a destination bin as one atomic pair of movements.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        request body TransferRequest true "Transfer"
// @Success      201 {object} APIResponse[ledgerapp.OperationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /ledger/transfers [post]
func (h *LedgerHandler) Transfer(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sourceBinID, err := uuid.Parse(req.SourceBinID)
	if err != nil {
		h.BadRequest(c, "Invalid source bin ID format")
		return
	}
	destinationBinID, err := uuid.Parse(req.DestinationBinID)
	if err != nil {
		h.BadRequest(c, "Invalid destination bin ID format")
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	resp, err := h.operations.Transfer(c.Request.Context(), ledgerapp.TransferRequest{
		SourceBinID:      sourceBinID,
		DestinationBinID: destinationBinID,
		ProductID:        productID,
		Quantity:         req.Quantity,
		PerformedBy:      performedBy,
		Notes:            req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Reconcile godoc
// @ID           ledgerReconcile
// @Summary      Reconcile a product's stock totals
// @Description  Compares the product's recorded total against the sum of its bin stock rows and optionally repairs the drift with an adjustment.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string true "Acting user ID" format(uuid)
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body ReconcileRequest false "Reconcile options"
// @Success      200 {object} APIResponse[ledgerapp.ReconcileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/reconcile [post]
func (h *LedgerHandler) Reconcile(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Missing or invalid user ID")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	resp, err := h.operations.Reconcile(c.Request.Context(), productID, performedBy, req.Repair)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ===================== Query Handlers =====================

// ListMovements godoc
// @ID           listLedgerMovements
// @Summary      List ledger movements
// @Description  Lists the movement history with filters and pagination, ordered by occurrence.
// @Tags         ledger
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        bin_id query string false "Bin ID" format(uuid)
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        type query string false "Movement type"
// @Param        source_type query string false "Source type"
// @Param        source_id query string false "Source document ID"
// @Success      200 {object} APIResponse[[]ledgerapp.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /ledger/movements [get]
func (h *LedgerHandler) ListMovements(c *gin.Context) {
	var query MovementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := toMovementListFilter(query)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.operations.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetMovement godoc
// @ID           getLedgerMovement
// @Summary      Get a movement by ID
// @Description  Retrieves one ledger movement.
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Movement ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /ledger/movements/{id} [get]
func (h *LedgerHandler) GetMovement(c *gin.Context) {
	movementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID format")
		return
	}

	movement, err := h.operations.GetMovement(c.Request.Context(), movementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movement)
}

// GetMovementsBySource godoc
// @ID           getLedgerMovementsBySource
// @Summary      Get movements by source document
// @Description  Retrieves all movements booked against one source document, ordered by occurrence.
// @Tags         ledger
// @Produce      json
// @Param        source_type query string true "Source type" example(PURCHASE_ORDER)
// @Param        source_id query string true "Source document ID"
// @Success      200 {object} APIResponse[[]ledgerapp.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /ledger/movements/by-source [get]
func (h *LedgerHandler) GetMovementsBySource(c *gin.Context) {
	sourceType := c.Query("source_type")
	sourceID := c.Query("source_id")
	if sourceType == "" || sourceID == "" {
		h.BadRequest(c, "source_type and source_id are required")
		return
	}

	movements, err := h.operations.GetMovementsBySource(c.Request.Context(), sourceType, sourceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// GetBinStock godoc
// @ID           getBinStock
// @Summary      Get stock in a bin
// @Description  Lists all stock rows of one bin.
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Bin ID" format(uuid)
// @Success      200 {object} APIResponse[[]ledgerapp.BinStockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /bins/{id}/stock [get]
func (h *LedgerHandler) GetBinStock(c *gin.Context) {
	binID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bin ID format")
		return
	}

	var listReq struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if listReq.Page <= 0 {
		listReq.Page = 1
	}
	if listReq.PageSize <= 0 {
		listReq.PageSize = 50
	}

	stocks, err := h.operations.GetBinStock(c.Request.Context(), binID, sharedFilter(listReq.Page, listReq.PageSize))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stocks)
}

// GetProductStock godoc
// @ID           getProductStock
// @Summary      Get a product's stock position
// @Description  Returns the product's recorded total together with its per-bin breakdown.
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.ProductStockResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/stock [get]
func (h *LedgerHandler) GetProductStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	stock, err := h.operations.GetProductStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// GetProductTotal godoc
// @ID           getProductStockTotal
// @Summary      Get a product's stock total
// @Description  Returns the product's stock total summed across bins, served from cache when available.
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[TotalData]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/stock/total [get]
func (h *LedgerHandler) GetProductTotal(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	total, err := h.operations.GetProductTotal(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TotalData{ProductID: productID.String(), Total: total})
}

// ListBelowMinimum godoc
// @ID           listProductsBelowMinimum
// @Summary      List products below minimum stock
// @Description  Lists products whose available quantity has fallen below their minimum stock level.
// @Tags         ledger
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]ledgerapp.ProductStockResponse]
// @Router       /products/below-minimum [get]
func (h *LedgerHandler) ListBelowMinimum(c *gin.Context) {
	var listReq struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if listReq.Page <= 0 {
		listReq.Page = 1
	}
	if listReq.PageSize <= 0 {
		listReq.PageSize = 20
	}

	products, err := h.operations.ListBelowMinimum(c.Request.Context(), sharedFilter(listReq.Page, listReq.PageSize))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// toMovementListFilter converts query parameters to the application filter
func toMovementListFilter(query MovementListQuery) (ledgerapp.MovementListFilter, error) {
	filter := ledgerapp.MovementListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		SourceID: query.SourceID,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if query.BinID != "" {
		binID, err := uuid.Parse(query.BinID)
		if err != nil {
			return filter, err
		}
		filter.BinID = &binID
	}
	if query.ProductID != "" {
		productID, err := uuid.Parse(query.ProductID)
		if err != nil {
			return filter, err
		}
		filter.ProductID = &productID
	}
	if query.PerformedBy != "" {
		performedBy, err := uuid.Parse(query.PerformedBy)
		if err != nil {
			return filter, err
		}
		filter.PerformedBy = &performedBy
	}
	if query.Type != "" {
		filter.Type = &query.Type
	}
	if query.SourceType != "" {
		filter.SourceType = &query.SourceType
	}
	if query.StartDate != "" {
		start, err := parseDateTime(query.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := parseDateTime(query.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}

	return filter, nil
}

// RegisterRoutes registers all ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("/goods-in", h.GoodsIn)
		ledger.POST("/goods-out", h.GoodsOut)
		ledger.POST("/returns", h.Returns)
		ledger.POST("/adjustments", h.Adjust)
		ledger.POST("/transfers", h.Transfer)
		ledger.GET("/movements", h.ListMovements)
		ledger.GET("/movements/by-source", h.GetMovementsBySource)
		ledger.GET("/movements/:id", h.GetMovement)
	}

	bins := rg.Group("/bins")
	{
		bins.GET("/:id/stock", h.GetBinStock)
	}

	products := rg.Group("/products")
	{
		products.GET("/below-minimum", h.ListBelowMinimum)
		products.GET("/:id/stock", h.GetProductStock)
		products.GET("/:id/stock/total", h.GetProductTotal)
		products.POST("/:id/reconcile", h.Reconcile)
	}
}
