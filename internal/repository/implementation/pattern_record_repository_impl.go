package implementation

import (
	"context"

	"support-routing-be/internal/entity"
	"support-routing-be/internal/mapper"
	"support-routing-be/internal/model"
	"support-routing-be/internal/repository/contract"
	"support-routing-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PatternRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PatternMapper
}

func NewPatternRecordRepository(db *gorm.DB) contract.PatternRecordRepository {
	return &PatternRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewPatternMapper(),
	}
}

func (r *PatternRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PatternRecordRepositoryImpl) Create(ctx context.Context, record *entity.PatternRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *PatternRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PatternRecord, error) {
	var models []*model.PatternRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PatternRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PatternRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
