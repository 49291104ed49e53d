package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/shared"
)

// MovementRepository defines the interface for movement persistence.
// The ledger is append-only, there are deliberately no update or delete
// methods.
type MovementRepository interface {
	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)

	// FindAll finds movements matching the filter
	FindAll(ctx context.Context, filter MovementFilter) ([]Movement, error)

	// FindByBinAndProduct finds all movements snapshotting one bin-product
	// pair, ordered by occurrence. This is the replay source.
	FindByBinAndProduct(ctx context.Context, binID, productID uuid.UUID) ([]Movement, error)

	// FindBySource finds movements by source document
	FindBySource(ctx context.Context, sourceType SourceType, sourceID string) ([]Movement, error)

	// Create appends a new movement
	Create(ctx context.Context, movement *Movement) error

	// CreateBatch appends multiple movements
	CreateBatch(ctx context.Context, movements []*Movement) error

	// Count counts movements matching the filter
	Count(ctx context.Context, filter MovementFilter) (int64, error)
}

// MovementFilter extends shared.Filter with movement-specific filters
type MovementFilter struct {
	shared.Filter
	BinID       *uuid.UUID
	ProductID   *uuid.UUID
	Type        *MovementType
	SourceType  *SourceType
	SourceID    string
	PerformedBy *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
}
