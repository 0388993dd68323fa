package implementation

import (
	"context"
	"errors"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/mapper"
	"support-routing-be/internal/model"
	"support-routing-be/internal/repository/contract"
	"support-routing-be/internal/repository/specification"

	"gorm.io/gorm"
)

type OperatorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerMapper
}

func NewOperatorRepository(db *gorm.DB) contract.OperatorRepository {
	return &OperatorRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerMapper(),
	}
}

func (r *OperatorRepositoryImpl) Create(ctx context.Context, operator *entity.Operator) error {
	m := r.mapper.OperatorToModel(operator)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*operator = *r.mapper.OperatorToEntity(m)
	return nil
}

func (r *OperatorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Operator, error) {
	var m model.Operator
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OperatorToEntity(&m), nil
}
