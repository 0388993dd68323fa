package contract

import (
	"context"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/repository/specification"
)

// PatternRecordRepository is append-only on the write side; records are never
// updated or deleted once written.
type PatternRecordRepository interface {
	Create(ctx context.Context, record *entity.PatternRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PatternRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
