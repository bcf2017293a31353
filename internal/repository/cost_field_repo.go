package repository

import (
	"context"

	"podboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CostFieldRepository interface {
	Create(ctx context.Context, field *model.CostField) error
	Update(ctx context.Context, field *model.CostField) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CostField, error)
	ListAll(ctx context.Context) ([]model.CostField, error)
}

type costFieldRepository struct {
	db *gorm.DB
}

func NewCostFieldRepository(db *gorm.DB) CostFieldRepository {
	return &costFieldRepository{db: db}
}

func (r *costFieldRepository) Create(ctx context.Context, field *model.CostField) error {
	return GetDB(ctx, r.db).Create(field).Error
}

func (r *costFieldRepository) Update(ctx context.Context, field *model.CostField) error {
	return GetDB(ctx, r.db).Save(field).Error
}

func (r *costFieldRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CostField{}).Error
}

func (r *costFieldRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CostField, error) {
	var field model.CostField
	if err := GetDB(ctx, r.db).First(&field, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *costFieldRepository) ListAll(ctx context.Context) ([]model.CostField, error) {
	var fields []model.CostField
	if err := GetDB(ctx, r.db).Order("created_at asc").Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}
