package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	appledger "github.com/stockops/backend/internal/application/ledger"
	"github.com/stockops/backend/internal/domain/ledger"
	"github.com/stockops/backend/internal/domain/procurement"
	"github.com/stockops/backend/internal/domain/shared"
)

const maxConflictRetries = 3

// ReceivingService manages the purchase order lifecycle and books
// received shipments into stock. Receipt and goods-in commit in one
// transaction so a failed booking never advances the order.
type ReceivingService struct {
	scope      appledger.TransactionScope
	operations *appledger.OperationsService
	poRepo     procurement.PurchaseOrderRepository
}

// NewReceivingService creates a new ReceivingService
func NewReceivingService(
	scope appledger.TransactionScope,
	operations *appledger.OperationsService,
	poRepo procurement.PurchaseOrderRepository,
) *ReceivingService {
	return &ReceivingService{
		scope:      scope,
		operations: operations,
		poRepo:     poRepo,
	}
}

func (s *ReceivingService) executeWithRetry(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.scope.Execute(ctx, fn)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

// Create opens a new pending purchase order
func (s *ReceivingService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	exists, err := s.poRepo.ExistsByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	items := make([]procurement.PurchaseOrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := procurement.NewPurchaseOrderItem(line.ProductID, line.Quantity, line.UnitCost)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	po, err := procurement.NewPurchaseOrder(req.OrderNumber, req.Supplier, req.DestinationBinID, items)
	if err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	response := ToOrderResponse(po)
	return &response, nil
}

// Get returns one purchase order with its items
func (s *ReceivingService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(po)
	return &response, nil
}

// List returns a page of purchase orders
func (s *ReceivingService) List(ctx context.Context, filter ListOrdersFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := toOrderFilter(filter)

	orders, err := s.poRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.poRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToOrderResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Confirm moves a pending order to confirmed
func (s *ReceivingService) Confirm(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Confirm()
	})
}

// Ship marks a confirmed order as shipped by the supplier
func (s *ReceivingService) Ship(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.MarkShipped()
	})
}

// Cancel abandons an order that has not shipped yet
func (s *ReceivingService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*OrderResponse, error) {
	return s.transition(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Cancel(reason)
	})
}

// transition applies a lifecycle change under optimistic locking
func (s *ReceivingService) transition(ctx context.Context, id uuid.UUID, change func(po *procurement.PurchaseOrder) error) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.executeWithRetry(ctx, func(repos appledger.TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := change(po); err != nil {
			return err
		}
		if err := repos.PurchaseOrders().SaveWithLock(ctx, po); err != nil {
			return err
		}
		r := ToOrderResponse(po)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Receive books a delivery against a shipped order. The received lines
// go into the order's destination bin at the unit cost locked when the
// order was placed, and the movements reference the order as their
// source document.
func (s *ReceivingService) Receive(ctx context.Context, id uuid.UUID, req ReceiveOrderRequest) (*ReceiveOrderResponse, error) {
	if req.PerformedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Performed-by cannot be empty")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Receipt must have at least one item")
	}

	var response *ReceiveOrderResponse
	err := s.executeWithRetry(ctx, func(repos appledger.TransactionalRepositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, id)
		if err != nil {
			return err
		}

		receiveItems := make([]procurement.ReceiveItem, 0, len(req.Items))
		for _, item := range req.Items {
			receiveItems = append(receiveItems, procurement.ReceiveItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		lines, err := po.Receive(receiveItems)
		if err != nil {
			return err
		}

		goodsInItems := make([]appledger.GoodsInItem, 0, len(lines))
		for _, line := range lines {
			goodsInItems = append(goodsInItems, appledger.GoodsInItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitCost:  line.UnitCost,
			})
		}
		booking, err := s.operations.ApplyGoodsIn(ctx, repos, appledger.GoodsInRequest{
			DestinationBinID: po.DestinationBinID,
			Source:           ledger.InboundSourceSupplier.String(),
			SourceID:         po.ID.String(),
			PerformedBy:      req.PerformedBy,
			Notes:            req.Notes,
			Items:            goodsInItems,
		}, ledger.SourceTypePurchaseOrder)
		if err != nil {
			return err
		}

		if err := repos.PurchaseOrders().SaveWithLock(ctx, po); err != nil {
			return err
		}
		response = &ReceiveOrderResponse{
			OrderID:   po.ID,
			Status:    po.Status.String(),
			Movements: booking.Movements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Movements returns the ledger rows booked against one order
func (s *ReceivingService) Movements(ctx context.Context, id uuid.UUID) ([]appledger.MovementResponse, error) {
	return s.operations.GetMovementsBySource(ctx, ledger.SourceTypePurchaseOrder.String(), id.String())
}

func toOrderFilter(filter ListOrdersFilter) procurement.PurchaseOrderFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}

	domainFilter := procurement.PurchaseOrderFilter{
		Filter:   base,
		Supplier: filter.Supplier,
	}
	if filter.Status != nil {
		status := procurement.PurchaseOrderStatus(*filter.Status)
		domainFilter.Status = &status
	}
	return domainFilter
}
