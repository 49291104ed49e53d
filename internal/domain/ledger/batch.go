package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stockops/backend/internal/domain/shared"
)

// ItemFailure describes why one item of a batch operation was rejected
type ItemFailure struct {
	Index     int       `json:"index"`
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
}

// BatchError carries the complete list of per-item failures for a
// rejected batch. The whole batch is aborted, no item is applied.
type BatchError struct {
	Failures []ItemFailure `json:"failures"`
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("batch rejected: %d of its items failed validation", len(e.Failures))
}

// NewBatchError creates a batch error from collected failures
func NewBatchError(failures []ItemFailure) *BatchError {
	return &BatchError{Failures: failures}
}

// AppendFailure records one item failure, unwrapping domain error codes
func AppendFailure(failures []ItemFailure, index int, productID uuid.UUID, err error) []ItemFailure {
	code := "ERR_INTERNAL"
	if domainErr, ok := err.(*shared.DomainError); ok {
		code = domainErr.Code
	}
	return append(failures, ItemFailure{
		Index:     index,
		ProductID: productID,
		Code:      code,
		Message:   err.Error(),
	})
}
