package ledger

import (
	"context"

	"github.com/stockops/backend/internal/domain/catalog"
	"github.com/stockops/backend/internal/domain/ledger"
	"github.com/stockops/backend/internal/domain/procurement"
	"github.com/stockops/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all stock repositories
// within one transaction. Every repository returned shares the same
// underlying database transaction.
type TransactionalRepositories interface {
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Bins returns the bin repository scoped to the current transaction
	Bins() warehouse.BinRepository
	// BinStocks returns the bin stock repository scoped to the current transaction
	BinStocks() warehouse.BinStockRepository
	// Movements returns the movement repository scoped to the current transaction
	Movements() ledger.MovementRepository
	// PurchaseOrders returns the purchase order repository scoped to the current transaction
	PurchaseOrders() procurement.PurchaseOrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually open
// transactions. Useful for tests against mock repositories.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	binRepo      warehouse.BinRepository
	binStockRepo warehouse.BinStockRepository
	movementRepo ledger.MovementRepository
	poRepo       procurement.PurchaseOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	binRepo warehouse.BinRepository,
	binStockRepo warehouse.BinStockRepository,
	movementRepo ledger.MovementRepository,
	poRepo procurement.PurchaseOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		binRepo:      binRepo,
		binStockRepo: binStockRepo,
		movementRepo: movementRepo,
		poRepo:       poRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

// Bins returns the bin repository
func (s *NoOpTransactionScope) Bins() warehouse.BinRepository {
	return s.binRepo
}

// BinStocks returns the bin stock repository
func (s *NoOpTransactionScope) BinStocks() warehouse.BinStockRepository {
	return s.binStockRepo
}

// Movements returns the movement repository
func (s *NoOpTransactionScope) Movements() ledger.MovementRepository {
	return s.movementRepo
}

// PurchaseOrders returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrders() procurement.PurchaseOrderRepository {
	return s.poRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
