package contract

import (
	"context"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/repository/specification"
)

type OperatorRepository interface {
	Create(ctx context.Context, operator *entity.Operator) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Operator, error)
}
