package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/ledger"
	"github.com/stockops/backend/internal/domain/shared"
)

// ListMovements returns a page of the movement history
func (s *OperationsService) ListMovements(ctx context.Context, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	domainFilter := toMovementFilter(filter)

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToMovementResponses(movements), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// GetMovement returns a single ledger row
func (s *OperationsService) GetMovement(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToMovementResponse(movement)
	return &response, nil
}

// GetMovementsBySource returns the movements booked against one source document
func (s *OperationsService) GetMovementsBySource(ctx context.Context, sourceType string, sourceID string) ([]MovementResponse, error) {
	st := ledger.SourceType(sourceType)
	if !st.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Invalid movement source type")
	}
	movements, err := s.movementRepo.FindBySource(ctx, st, sourceID)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// GetBinStock returns the stock rows held in a bin
func (s *OperationsService) GetBinStock(ctx context.Context, binID uuid.UUID, filter shared.Filter) ([]BinStockResponse, error) {
	if _, err := s.binRepo.FindByID(ctx, binID); err != nil {
		return nil, err
	}
	stocks, err := s.binStockRepo.FindByBin(ctx, binID, filter)
	if err != nil {
		return nil, err
	}
	return ToBinStockResponses(stocks), nil
}

// GetProductStock returns a product's total and its per-bin breakdown.
// The total is refreshed into the cache on every read.
func (s *OperationsService) GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	stocks, err := s.binStockRepo.FindByProduct(ctx, productID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetProductTotal(ctx, productID, product.AvailableQuantity)
	}
	response := ToProductStockResponse(product, stocks)
	return &response, nil
}

// GetProductTotal returns a product's available total, served from the
// cache when present.
func (s *OperationsService) GetProductTotal(ctx context.Context, productID uuid.UUID) (int64, error) {
	if s.cache != nil {
		if total, ok, err := s.cache.GetProductTotal(ctx, productID); err == nil && ok {
			return total, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.SetProductTotal(ctx, productID, product.AvailableQuantity)
	}
	return product.AvailableQuantity, nil
}

// ListBelowMinimum returns products whose total fell below their minimum
// stock level
func (s *OperationsService) ListBelowMinimum(ctx context.Context, filter shared.Filter) ([]ProductStockResponse, error) {
	products, err := s.productRepo.FindBelowMinimum(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductStockResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductStockResponse(&products[idx], nil))
	}
	return responses, nil
}

func toMovementFilter(filter MovementListFilter) ledger.MovementFilter {
	base := shared.DefaultFilter()
	if filter.Page > 0 {
		base.Page = filter.Page
	}
	if filter.PageSize > 0 {
		base.PageSize = filter.PageSize
	}
	base.OrderBy = "occurred_at"
	base.OrderDir = "desc"

	domainFilter := ledger.MovementFilter{
		Filter:      base,
		BinID:       filter.BinID,
		ProductID:   filter.ProductID,
		SourceID:    filter.SourceID,
		PerformedBy: filter.PerformedBy,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
	}
	if filter.Type != nil {
		movementType := ledger.MovementType(*filter.Type)
		domainFilter.Type = &movementType
	}
	if filter.SourceType != nil {
		sourceType := ledger.SourceType(*filter.SourceType)
		domainFilter.SourceType = &sourceType
	}
	return domainFilter
}
