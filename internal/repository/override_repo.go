package repository

import (
	"context"

	"podboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OverrideRepository interface {
	Upsert(ctx context.Context, override *model.OrderOverride) error
	FindByOrderID(ctx context.Context, orderID string) (*model.OrderOverride, error)
	ListAll(ctx context.Context) ([]model.OrderOverride, error)
}

type overrideRepository struct {
	db *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

func (r *overrideRepository) Upsert(ctx context.Context, override *model.OrderOverride) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		UpdateAll: true,
	}).Create(override).Error
}

func (r *overrideRepository) FindByOrderID(ctx context.Context, orderID string) (*model.OrderOverride, error) {
	var override model.OrderOverride
	if err := GetDB(ctx, r.db).First(&override, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *overrideRepository) ListAll(ctx context.Context) ([]model.OrderOverride, error) {
	var overrides []model.OrderOverride
	if err := GetDB(ctx, r.db).Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}
