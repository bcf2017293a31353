package repository

import (
	"context"

	"podboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdSpendRepository interface {
	Create(ctx context.Context, entry *model.AdSpendEntry) error
	Update(ctx context.Context, entry *model.AdSpendEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdSpendEntry, error)
	List(ctx context.Context, page, limit int) ([]model.AdSpendEntry, int64, error)
	// ListBetween returns entries with spend_date inside [from, to]
	// (YYYY-MM-DD keys, lexicographic comparison is date comparison).
	// Empty bounds mean unbounded.
	ListBetween(ctx context.Context, from, to string) ([]model.AdSpendEntry, error)
}

type adSpendRepository struct {
	db *gorm.DB
}

func NewAdSpendRepository(db *gorm.DB) AdSpendRepository {
	return &adSpendRepository{db: db}
}

func (r *adSpendRepository) Create(ctx context.Context, entry *model.AdSpendEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *adSpendRepository) Update(ctx context.Context, entry *model.AdSpendEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *adSpendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.AdSpendEntry{}).Error
}

func (r *adSpendRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AdSpendEntry, error) {
	var entry model.AdSpendEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *adSpendRepository) List(ctx context.Context, page, limit int) ([]model.AdSpendEntry, int64, error) {
	var entries []model.AdSpendEntry
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.AdSpendEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("spend_date desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *adSpendRepository) ListBetween(ctx context.Context, from, to string) ([]model.AdSpendEntry, error) {
	db := GetDB(ctx, r.db)
	if from != "" {
		db = db.Where("spend_date >= ?", from)
	}
	if to != "" {
		db = db.Where("spend_date <= ?", to)
	}

	var entries []model.AdSpendEntry
	if err := db.Order("spend_date asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
