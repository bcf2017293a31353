package repository

import (
	"context"
	"time"

	"podboard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Upsert(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, page, limit int) ([]model.Order, int64, error)
	// ListForReport returns every order placed inside [from, to] with items
	// and shipping charges preloaded. Nil bounds mean unbounded.
	ListForReport(ctx context.Context, from, to *time.Time) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Upsert(ctx context.Context, order *model.Order) error {
	db := GetDB(ctx, r.db)

	// Line items and charges are replaced wholesale on re-sync; the feed is
	// the source of truth for them.
	if err := db.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", order.ID).Delete(&model.OrderShippingCharges{}).Error; err != nil {
		return err
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("ShippingCharges").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, page, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Items").Preload("ShippingCharges").
		Order("placed_at desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) ListForReport(ctx context.Context, from, to *time.Time) ([]model.Order, error) {
	db := GetDB(ctx, r.db).Preload("Items").Preload("ShippingCharges")
	if from != nil {
		db = db.Where("placed_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("placed_at <= ?", *to)
	}

	var orders []model.Order
	if err := db.Order("placed_at asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
