package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/ledger"
	"github.com/stockops/backend/internal/domain/shared"
	"github.com/stockops/backend/internal/domain/warehouse"
)

// maxConflictRetries bounds how often an operation is replayed after an
// optimistic lock conflict before the conflict is surfaced to the caller.
const maxConflictRetries = 3

// StockCache caches per-product stock totals on the read path. The
// operations service invalidates entries after every committed mutation.
type StockCache interface {
	// GetProductTotal returns the cached total and whether it was present
	GetProductTotal(ctx context.Context, productID uuid.UUID) (int64, bool, error)
	// SetProductTotal stores the total for a product
	SetProductTotal(ctx context.Context, productID uuid.UUID, total int64) error
	// InvalidateProduct drops the cached total for a product
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error
}

// OperationMetrics receives business metrics from the operations service.
// Implemented by the telemetry layer; a nil recorder disables collection.
type OperationMetrics interface {
	// RecordMovement records one booked ledger movement
	RecordMovement(ctx context.Context, movementType, sourceType string)
	// RecordBatchRejected records a batch that failed validation
	RecordBatchRejected(ctx context.Context, operation string, failureCount int64)
	// RecordConflictRetry records an optimistic lock conflict that was retried
	RecordConflictRetry(ctx context.Context, operation string)
	// RecordOperationDuration records how long an operation took
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
}

// OperationsService is the single writer for product totals, bin counts
// and bin stock rows. Every mutation runs inside one transaction scope,
// appends its movements in the same transaction, and is retried a bounded
// number of times on version conflicts.
type OperationsService struct {
	scope        TransactionScope
	guard        *ledger.Guard
	productRepo  catalog.ProductRepository
	binRepo      warehouse.BinRepository
	binStockRepo warehouse.BinStockRepository
	movementRepo ledger.MovementRepository
	cache        StockCache
	metrics      OperationMetrics
}

// NewOperationsService creates a new OperationsService
func NewOperationsService(
	scope TransactionScope,
	productRepo catalog.ProductRepository,
	binRepo warehouse.BinRepository,
	binStockRepo warehouse.BinStockRepository,
	movementRepo ledger.MovementRepository,
) *OperationsService {
	return &OperationsService{
		scope:        scope,
		guard:        ledger.NewGuard(),
		productRepo:  productRepo,
		binRepo:      binRepo,
		binStockRepo: binStockRepo,
		movementRepo: movementRepo,
	}
}

// SetStockCache sets the optional read cache
func (s *OperationsService) SetStockCache(cache StockCache) {
	s.cache = cache
}

// SetMetrics sets the optional business metrics recorder
func (s *OperationsService) SetMetrics(metrics OperationMetrics) {
	s.metrics = metrics
}

// executeWithRetry replays the transactional function on optimistic lock
// conflicts. The closure must be safe to re-run from scratch.
func (s *OperationsService) executeWithRetry(ctx context.Context, operation string, fn func(repos TransactionalRepositories) error) error {
	start := time.Now()
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = s.scope.Execute(ctx, fn)
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
		if s.metrics != nil {
			s.metrics.RecordConflictRetry(ctx, operation)
		}
	}
	if s.metrics != nil {
		s.metrics.RecordOperationDuration(ctx, operation, time.Since(start))
		var batchErr *ledger.BatchError
		if errors.As(err, &batchErr) {
			s.metrics.RecordBatchRejected(ctx, operation, int64(len(batchErr.Failures)))
		}
	}
	return err
}

// recordMovements reports booked movements after a successful commit
func (s *OperationsService) recordMovements(ctx context.Context, movementType ledger.MovementType, sourceType ledger.SourceType, count int) {
	if s.metrics == nil {
		return
	}
	for i := 0; i < count; i++ {
		s.metrics.RecordMovement(ctx, movementType.String(), sourceType.String())
	}
}

// invalidateProducts drops cache entries after a committed mutation
func (s *OperationsService) invalidateProducts(ctx context.Context, productIDs map[uuid.UUID]struct{}) {
	if s.cache == nil {
		return
	}
	for productID := range productIDs {
		_ = s.cache.InvalidateProduct(ctx, productID)
	}
}

// GoodsIn books a batch of new stock into a destination bin. The whole
// batch commits or none of it does; on rejection the error carries the
// complete per-item failure list.
func (s *OperationsService) GoodsIn(ctx context.Context, req GoodsInRequest) (*OperationResponse, error) {
	source := ledger.InboundSource(req.Source)
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid goods-in source")
	}
	if err := validateBatchHeader(req.PerformedBy, len(req.Items)); err != nil {
		return nil, err
	}

	sourceType := ledger.SourceTypeGoodsIn
	if req.SourceID != "" && source == ledger.InboundSourceSupplier {
		sourceType = ledger.SourceTypePurchaseOrder
	}

	var response *OperationResponse
	touched := make(map[uuid.UUID]struct{})
	err := s.executeWithRetry(ctx, "goods_in", func(repos TransactionalRepositories) error {
		var err error
		response, err = s.applyGoodsIn(ctx, repos, req, source, sourceType, touched)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, touched)
	s.recordMovements(ctx, ledger.MovementTypeInbound, sourceType, len(response.Movements))
	return response, nil
}

// ApplyGoodsIn books a goods-in batch inside an already open transaction.
// Used by purchase order receiving so receipt and stock change commit
// together.
func (s *OperationsService) ApplyGoodsIn(
	ctx context.Context,
	repos TransactionalRepositories,
	req GoodsInRequest,
	sourceType ledger.SourceType,
) (*OperationResponse, error) {
	source := ledger.InboundSource(req.Source)
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid goods-in source")
	}
	if err := validateBatchHeader(req.PerformedBy, len(req.Items)); err != nil {
		return nil, err
	}
	return s.applyGoodsIn(ctx, repos, req, source, sourceType, make(map[uuid.UUID]struct{}))
}

func (s *OperationsService) applyGoodsIn(
	ctx context.Context,
	repos TransactionalRepositories,
	req GoodsInRequest,
	source ledger.InboundSource,
	sourceType ledger.SourceType,
	touched map[uuid.UUID]struct{},
) (*OperationResponse, error) {
	bin, err := repos.Bins().FindByID(ctx, req.DestinationBinID)
	if err != nil {
		return nil, err
	}
	if !bin.IsActive {
		return nil, shared.NewDomainError("BIN_INACTIVE", "Destination bin is not active")
	}

	// Validation pass: every item is checked and every failure collected
	// before anything is touched. Capacity is tracked cumulatively so
	// earlier items in the batch count against later ones.
	products, failures := s.loadProducts(ctx, repos, goodsInProductIDs(req.Items))
	tracker := ledger.NewCapacityTracker(bin)
	for idx, item := range req.Items {
		if item.Quantity <= 0 {
			failures = ledger.AppendFailure(failures, idx, item.ProductID,
				shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"))
			continue
		}
		if item.UnitCost.IsNegative() {
			failures = ledger.AppendFailure(failures, idx, item.ProductID,
				shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative"))
			continue
		}
		if _, ok := products[item.ProductID]; !ok {
			continue // already recorded as NOT_FOUND
		}
		if err := tracker.TryAdd(item.Quantity); err != nil {
			failures = ledger.AppendFailure(failures, idx, item.ProductID, err)
		}
	}
	if len(failures) > 0 {
		return nil, ledger.NewBatchError(failures)
	}

	// Apply pass. Bin stock rows are mutated sequentially so each
	// movement snapshots the running balance within the batch.
	results := make([]MovementResult, 0, len(req.Items))
	movements := make([]*ledger.Movement, 0, len(req.Items))
	rows := make(map[uuid.UUID]*warehouse.BinStock)
	for _, item := range req.Items {
		row, ok := rows[item.ProductID]
		if !ok {
			row, err = repos.BinStocks().GetOrCreate(ctx, bin.ID, item.ProductID)
			if err != nil {
				return nil, err
			}
			rows[item.ProductID] = row
		}

		before := row.Quantity
		if err := row.Increase(item.Quantity); err != nil {
			return nil, err
		}
		if err := bin.AddCount(item.Quantity); err != nil {
			return nil, err
		}
		if err := products[item.ProductID].AddStock(item.Quantity); err != nil {
			return nil, err
		}

		movement, err := ledger.NewMovement(
			ledger.MovementTypeInbound,
			item.ProductID,
			item.Quantity,
			before,
			item.Quantity,
			sourceType,
			req.PerformedBy,
		)
		if err != nil {
			return nil, err
		}
		movement.WithBin(bin.ID).
			WithDestinationBin(bin.ID).
			WithUnitCost(item.UnitCost).
			WithReason(source.String()).
			WithNotes(req.Notes)
		if req.SourceID != "" {
			movement.WithSource(sourceType, req.SourceID)
		}
		movements = append(movements, movement)
		results = append(results, toMovementResult(movement))
	}

	if err := s.persistMutation(ctx, repos, products, []*warehouse.Bin{bin}, rows, movements, touched); err != nil {
		return nil, err
	}
	return &OperationResponse{Movements: results}, nil
}

// GoodsOut dispatches a batch of stock from a source bin. Shortfalls are
// collected across the complete batch before rejection so the caller
// sees every failing line, not just the first.
func (s *OperationsService) GoodsOut(ctx context.Context, req GoodsOutRequest) (*OperationResponse, error) {
	destination := ledger.OutboundDestination(req.Destination)
	if !destination.IsValid() {
		return nil, shared.NewDomainError("INVALID_DESTINATION", "Invalid goods-out destination")
	}
	if err := validateBatchHeader(req.PerformedBy, len(req.Items)); err != nil {
		return nil, err
	}

	var response *OperationResponse
	touched := make(map[uuid.UUID]struct{})
	err := s.executeWithRetry(ctx, "goods_out", func(repos TransactionalRepositories) error {
		bin, err := repos.Bins().FindByID(ctx, req.SourceBinID)
		if err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(req.Items))
		for _, item := range req.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, failures := s.loadProducts(ctx, repos, productIDs)

		// Cumulative validation per product: both the product total and
		// the bin row must cover the quantity, counting earlier lines of
		// the same batch.
		rows := make(map[uuid.UUID]*warehouse.BinStock)
		productTrackers := make(map[uuid.UUID]*ledger.BalanceTracker)
		rowTrackers := make(map[uuid.UUID]*ledger.BalanceTracker)
		for idx, item := range req.Items {
			if item.Quantity <= 0 {
				failures = ledger.AppendFailure(failures, idx, item.ProductID,
					shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"))
				continue
			}
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}

			row, ok := rows[item.ProductID]
			if !ok {
				row, err = repos.BinStocks().FindByBinAndProduct(ctx, bin.ID, item.ProductID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						failures = ledger.AppendFailure(failures, idx, item.ProductID, shared.ErrInsufficientStock)
						continue
					}
					return err
				}
				rows[item.ProductID] = row
				productTrackers[item.ProductID] = ledger.NewBalanceTracker(product.AvailableQuantity)
				rowTrackers[item.ProductID] = ledger.NewBalanceTracker(row.Quantity)
			}

			if err := productTrackers[item.ProductID].TryRemove(item.Quantity); err != nil {
				failures = ledger.AppendFailure(failures, idx, item.ProductID, err)
				continue
			}
			if err := rowTrackers[item.ProductID].TryRemove(item.Quantity); err != nil {
				failures = ledger.AppendFailure(failures, idx, item.ProductID, err)
			}
		}
		if len(failures) > 0 {
			return ledger.NewBatchError(failures)
		}

		results := make([]MovementResult, 0, len(req.Items))
		movements := make([]*ledger.Movement, 0, len(req.Items))
		for _, item := range req.Items {
			row := rows[item.ProductID]
			before := row.Quantity
			if err := row.Decrease(item.Quantity); err != nil {
				return err
			}
			if err := bin.RemoveCount(item.Quantity); err != nil {
				return err
			}
			if err := products[item.ProductID].RemoveStock(item.Quantity); err != nil {
				return err
			}

			movement, err := ledger.NewMovement(
				ledger.MovementTypeOutbound,
				item.ProductID,
				item.Quantity,
				before,
				-item.Quantity,
				ledger.SourceTypeGoodsOut,
				req.PerformedBy,
			)
			if err != nil {
				return err
			}
			movement.WithBin(bin.ID).
				WithSourceBin(bin.ID).
				WithUnitCost(products[item.ProductID].CostPrice).
				WithReason(destination.String()).
				WithNotes(req.Notes)
			if req.SourceID != "" {
				movement.WithSource(ledger.SourceTypeGoodsOut, req.SourceID)
			}
			movements = append(movements, movement)
			results = append(results, toMovementResult(movement))
		}

		if err := s.persistMutation(ctx, repos, products, []*warehouse.Bin{bin}, rows, movements, touched); err != nil {
			return err
		}
		response = &OperationResponse{Movements: results}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, touched)
	s.recordMovements(ctx, ledger.MovementTypeOutbound, ledger.SourceTypeGoodsOut, len(response.Movements))
	return response, nil
}

// Returns books returned goods. Items with restocking reasons go back
// into the destination bin and the product total; damaged and expired
// items are written off, appending a movement without any stock change.
func (s *OperationsService) Returns(ctx context.Context, req ReturnsRequest) (*OperationResponse, error) {
	if err := validateBatchHeader(req.PerformedBy, len(req.Items)); err != nil {
		return nil, err
	}

	var response *OperationResponse
	touched := make(map[uuid.UUID]struct{})
	err := s.executeWithRetry(ctx, "returns", func(repos TransactionalRepositories) error {
		bin, err := repos.Bins().FindByID(ctx, req.DestinationBinID)
		if err != nil {
			return err
		}

		productIDs := make([]uuid.UUID, 0, len(req.Items))
		for _, item := range req.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		products, failures := s.loadProducts(ctx, repos, productIDs)

		tracker := ledger.NewCapacityTracker(bin)
		restocks := false
		for idx, item := range req.Items {
			reason := ledger.ReturnReason(item.Reason)
			if !reason.IsValid() {
				failures = ledger.AppendFailure(failures, idx, item.ProductID,
					shared.NewDomainError("INVALID_REASON", "Invalid return reason"))
				continue
			}
			if item.Quantity <= 0 {
				failures = ledger.AppendFailure(failures, idx, item.ProductID,
					shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"))
				continue
			}
			if _, ok := products[item.ProductID]; !ok {
				continue
			}
			if reason.RequiresRestock() {
				restocks = true
				if !bin.IsActive {
					failures = ledger.AppendFailure(failures, idx, item.ProductID,
						shared.NewDomainError("BIN_INACTIVE", "Destination bin is not active"))
					continue
				}
				if err := tracker.TryAdd(item.Quantity); err != nil {
					failures = ledger.AppendFailure(failures, idx, item.ProductID, err)
				}
			}
		}
		if len(failures) > 0 {
			return ledger.NewBatchError(failures)
		}

		results := make([]MovementResult, 0, len(req.Items))
		movements := make([]*ledger.Movement, 0, len(req.Items))
		rows := make(map[uuid.UUID]*warehouse.BinStock)
		for _, item := range req.Items {
			reason := ledger.ReturnReason(item.Reason)

			var movement *ledger.Movement
			if reason.RequiresRestock() {
				row, ok := rows[item.ProductID]
				if !ok {
					row, err = repos.BinStocks().GetOrCreate(ctx, bin.ID, item.ProductID)
					if err != nil {
						return err
					}
					rows[item.ProductID] = row
				}
				before := row.Quantity
				if err := row.Increase(item.Quantity); err != nil {
					return err
				}
				if err := bin.AddCount(item.Quantity); err != nil {
					return err
				}
				if err := products[item.ProductID].AddStock(item.Quantity); err != nil {
					return err
				}
				movement, err = ledger.NewMovement(
					ledger.MovementTypeReturn,
					item.ProductID,
					item.Quantity,
					before,
					item.Quantity,
					ledger.SourceTypeReturn,
					req.PerformedBy,
				)
				if err != nil {
					return err
				}
				movement.WithDestinationBin(bin.ID)
			} else {
				// Write-off: the ledger keeps the returned quantity but
				// no balance changes.
				before, err := s.rowQuantity(ctx, repos, rows, bin.ID, item.ProductID)
				if err != nil {
					return err
				}
				movement, err = ledger.NewMovement(
					ledger.MovementTypeReturn,
					item.ProductID,
					item.Quantity,
					before,
					0,
					ledger.SourceTypeReturn,
					req.PerformedBy,
				)
				if err != nil {
					return err
				}
			}
			movement.WithBin(bin.ID).
				WithReason(reason.String()).
				WithNotes(req.Notes)
			if req.SourceID != "" {
				movement.WithSource(ledger.SourceTypeReturn, req.SourceID)
			}
			movements = append(movements, movement)
			results = append(results, toMovementResult(movement))
		}

		bins := []*warehouse.Bin{}
		if restocks {
			bins = append(bins, bin)
		}
		if err := s.persistMutation(ctx, repos, products, bins, rows, movements, touched); err != nil {
			return err
		}
		response = &OperationResponse{Movements: results}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, touched)
	s.recordMovements(ctx, ledger.MovementTypeReturn, ledger.SourceTypeReturn, len(response.Movements))
	return response, nil
}

// Adjust corrects a product's recorded quantity by a signed delta. When
// a bin is named and the delta is positive the bin row and bin count are
// raised with it; negative deltas touch the product total only.
func (s *OperationsService) Adjust(ctx context.Context, req AdjustmentRequest) (*OperationResponse, error) {
	reason := ledger.AdjustmentReason(req.Reason)
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Invalid adjustment reason")
	}
	if req.PerformedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Performed-by cannot be empty")
	}

	var response *OperationResponse
	touched := make(map[uuid.UUID]struct{})
	err := s.executeWithRetry(ctx, "adjust", func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if err := s.guard.CanAdjust(product, req.Delta, reason); err != nil {
			return err
		}

		magnitude := req.Delta
		if magnitude < 0 {
			magnitude = -magnitude
		}

		var movement *ledger.Movement
		bins := []*warehouse.Bin{}
		rows := make(map[uuid.UUID]*warehouse.BinStock)
		if req.BinID != nil && req.Delta > 0 {
			bin, err := repos.Bins().FindByID(ctx, *req.BinID)
			if err != nil {
				return err
			}
			if err := s.guard.CanAdd(bin, req.Delta); err != nil {
				return err
			}
			row, err := repos.BinStocks().GetOrCreate(ctx, bin.ID, product.ID)
			if err != nil {
				return err
			}

			before := row.Quantity
			if err := row.Increase(req.Delta); err != nil {
				return err
			}
			if err := bin.AddCount(req.Delta); err != nil {
				return err
			}
			if err := product.ApplyAdjustment(req.Delta, reason.AllowsNegativeResult()); err != nil {
				return err
			}

			movement, err = ledger.NewMovement(
				ledger.MovementTypeAdjustment,
				product.ID,
				magnitude,
				before,
				req.Delta,
				ledger.SourceTypeAdjustment,
				req.PerformedBy,
			)
			if err != nil {
				return err
			}
			movement.WithBin(bin.ID).WithDestinationBin(bin.ID)
			bins = append(bins, bin)
			rows[product.ID] = row
		} else {
			before := product.AvailableQuantity
			if err := product.ApplyAdjustment(req.Delta, reason.AllowsNegativeResult()); err != nil {
				return err
			}
			// Bin-less snapshot describes the product total. A negative
			// total is representable here only because loss and damage
			// adjustments are allowed past zero.
			if before < 0 {
				before = 0
			}
			movement, err = ledger.NewMovement(
				ledger.MovementTypeAdjustment,
				product.ID,
				magnitude,
				before,
				req.Delta,
				ledger.SourceTypeAdjustment,
				req.PerformedBy,
			)
			if err != nil {
				return err
			}
		}
		movement.WithReason(reason.String()).WithNotes(req.Notes)

		products := map[uuid.UUID]*catalog.Product{product.ID: product}
		if err := s.persistMutation(ctx, repos, products, bins, rows, []*ledger.Movement{movement}, touched); err != nil {
			return err
		}
		response = &OperationResponse{Movements: []MovementResult{toMovementResult(movement)}}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, touched)
	s.recordMovements(ctx, ledger.MovementTypeAdjustment, ledger.SourceTypeAdjustment, len(response.Movements))
	return response, nil
}

// Transfer moves a quantity between two bins. Both invariants are checked
// before any mutation, the product total is untouched, and two movement
// rows sharing a transfer reference snapshot both sides.
func (s *OperationsService) Transfer(ctx context.Context, req TransferRequest) (*OperationResponse, error) {
	if req.SourceBinID == req.DestinationBinID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination bins must differ")
	}
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if req.PerformedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Performed-by cannot be empty")
	}

	var response *OperationResponse
	err := s.executeWithRetry(ctx, "transfer", func(repos TransactionalRepositories) error {
		sourceBin, err := repos.Bins().FindByID(ctx, req.SourceBinID)
		if err != nil {
			return err
		}
		destBin, err := repos.Bins().FindByID(ctx, req.DestinationBinID)
		if err != nil {
			return err
		}
		if !destBin.IsActive {
			return shared.NewDomainError("BIN_INACTIVE", "Destination bin is not active")
		}

		sourceRow, err := repos.BinStocks().FindByBinAndProduct(ctx, sourceBin.ID, req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrInsufficientStock
			}
			return err
		}

		// Both guards run before anything moves.
		if err := s.guard.CanRemove(sourceRow, req.Quantity); err != nil {
			return err
		}
		if err := s.guard.CanAdd(destBin, req.Quantity); err != nil {
			return err
		}

		destRow, err := repos.BinStocks().GetOrCreate(ctx, destBin.ID, req.ProductID)
		if err != nil {
			return err
		}

		sourceBefore := sourceRow.Quantity
		destBefore := destRow.Quantity
		if err := sourceRow.Decrease(req.Quantity); err != nil {
			return err
		}
		if err := sourceBin.RemoveCount(req.Quantity); err != nil {
			return err
		}
		if err := destRow.Increase(req.Quantity); err != nil {
			return err
		}
		if err := destBin.AddCount(req.Quantity); err != nil {
			return err
		}

		ref := uuid.New()
		outMovement, err := ledger.NewMovement(
			ledger.MovementTypeTransfer,
			req.ProductID,
			req.Quantity,
			sourceBefore,
			-req.Quantity,
			ledger.SourceTypeTransfer,
			req.PerformedBy,
		)
		if err != nil {
			return err
		}
		outMovement.WithBin(sourceBin.ID).
			WithSourceBin(sourceBin.ID).
			WithDestinationBin(destBin.ID).
			WithTransferRef(ref).
			WithNotes(req.Notes)

		inMovement, err := ledger.NewMovement(
			ledger.MovementTypeTransfer,
			req.ProductID,
			req.Quantity,
			destBefore,
			req.Quantity,
			ledger.SourceTypeTransfer,
			req.PerformedBy,
		)
		if err != nil {
			return err
		}
		inMovement.WithBin(destBin.ID).
			WithSourceBin(sourceBin.ID).
			WithDestinationBin(destBin.ID).
			WithTransferRef(ref).
			WithNotes(req.Notes)

		if err := repos.Bins().SaveWithLock(ctx, sourceBin); err != nil {
			return err
		}
		if err := repos.Bins().SaveWithLock(ctx, destBin); err != nil {
			return err
		}
		if err := repos.BinStocks().Save(ctx, sourceRow); err != nil {
			return err
		}
		if err := repos.BinStocks().Save(ctx, destRow); err != nil {
			return err
		}
		if err := repos.Movements().CreateBatch(ctx, []*ledger.Movement{outMovement, inMovement}); err != nil {
			return err
		}

		response = &OperationResponse{Movements: []MovementResult{
			toMovementResult(outMovement),
			toMovementResult(inMovement),
		}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordMovements(ctx, ledger.MovementTypeTransfer, ledger.SourceTypeTransfer, len(response.Movements))
	return response, nil
}

// Reconcile recomputes a product's total from its bin stock rows and
// reports the drift. With repair set, the recorded total is moved onto
// the computed one through an audit adjustment so the correction itself
// lands in the ledger.
func (s *OperationsService) Reconcile(ctx context.Context, productID, performedBy uuid.UUID, repair bool) (*ReconcileResponse, error) {
	if performedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Performed-by cannot be empty")
	}

	var response *ReconcileResponse
	touched := make(map[uuid.UUID]struct{})
	err := s.executeWithRetry(ctx, "reconcile", func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		computed, err := repos.BinStocks().SumQuantityByProduct(ctx, productID)
		if err != nil {
			return err
		}

		drift := product.AvailableQuantity - computed
		response = &ReconcileResponse{
			ProductID:     productID,
			RecordedTotal: product.AvailableQuantity,
			ComputedTotal: computed,
			Drift:         drift,
		}
		if !repair || drift == 0 {
			return nil
		}

		before := product.AvailableQuantity
		if before < 0 {
			before = 0
		}
		if err := product.ApplyAdjustment(-drift, true); err != nil {
			return err
		}
		movement, err := ledger.NewMovement(
			ledger.MovementTypeAdjustment,
			productID,
			abs64(drift),
			before,
			-drift,
			ledger.SourceTypeAdjustment,
			performedBy,
		)
		if err != nil {
			return err
		}
		movement.WithReason(ledger.AdjustmentReasonAudit.String()).
			WithNotes("reconciliation against bin stock totals")

		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}
		touched[productID] = struct{}{}
		response.Repaired = true
		response.RecordedTotal = product.AvailableQuantity
		response.Drift = 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateProducts(ctx, touched)
	return response, nil
}

// loadProducts loads every unique product, recording a failure per
// missing or inactive one at its first item index.
func (s *OperationsService) loadProducts(
	ctx context.Context,
	repos TransactionalRepositories,
	productIDs []uuid.UUID,
) (map[uuid.UUID]*catalog.Product, []ledger.ItemFailure) {
	products := make(map[uuid.UUID]*catalog.Product)
	var failures []ledger.ItemFailure
	seen := make(map[uuid.UUID]bool)
	for idx, productID := range productIDs {
		if seen[productID] {
			continue
		}
		seen[productID] = true

		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			failures = ledger.AppendFailure(failures, idx, productID, err)
			continue
		}
		if !product.IsActive() {
			failures = ledger.AppendFailure(failures, idx, productID,
				shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active"))
			continue
		}
		products[productID] = product
	}
	return products, failures
}

// rowQuantity returns the current bin row balance without creating a row
func (s *OperationsService) rowQuantity(
	ctx context.Context,
	repos TransactionalRepositories,
	rows map[uuid.UUID]*warehouse.BinStock,
	binID, productID uuid.UUID,
) (int64, error) {
	if row, ok := rows[productID]; ok {
		return row.Quantity, nil
	}
	row, err := repos.BinStocks().FindByBinAndProduct(ctx, binID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Quantity, nil
}

// persistMutation writes every touched aggregate of one operation in a
// fixed order: products, bins, rows, then the movement append.
func (s *OperationsService) persistMutation(
	ctx context.Context,
	repos TransactionalRepositories,
	products map[uuid.UUID]*catalog.Product,
	bins []*warehouse.Bin,
	rows map[uuid.UUID]*warehouse.BinStock,
	movements []*ledger.Movement,
	touched map[uuid.UUID]struct{},
) error {
	for _, product := range products {
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
		touched[product.ID] = struct{}{}
	}
	for _, bin := range bins {
		if err := repos.Bins().SaveWithLock(ctx, bin); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := repos.BinStocks().Save(ctx, row); err != nil {
			return err
		}
	}
	return repos.Movements().CreateBatch(ctx, movements)
}

func validateBatchHeader(performedBy uuid.UUID, itemCount int) error {
	if performedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Performed-by cannot be empty")
	}
	if itemCount == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Batch must have at least one item")
	}
	return nil
}

func goodsInProductIDs(items []GoodsInItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func toMovementResult(m *ledger.Movement) MovementResult {
	return MovementResult{
		MovementID:      m.ID,
		ProductID:       m.ProductID,
		BinID:           m.BinID,
		QuantityBefore:  m.QuantityBefore,
		QuantityChanged: m.QuantityChanged,
		QuantityAfter:   m.QuantityAfter,
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
