package repository

import (
	"context"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type AccessorySaleGormRepository struct {
	db *gorm.DB
}

func NewAccessorySaleGormRepository(db *gorm.DB) *AccessorySaleGormRepository {
	return &AccessorySaleGormRepository{db: db}
}

func (r *AccessorySaleGormRepository) Create(ctx context.Context, sale model.AccessorySale) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return 0, err
	}
	return sale.ID, nil
}

func (r *AccessorySaleGormRepository) List(ctx context.Context, q repo.SaleListQuery) ([]model.AccessorySale, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	dbq := r.db.WithContext(ctx).Model(&model.AccessorySale{})

	if q.AccessoryID != nil {
		dbq = dbq.Where("accessory_id = ?", *q.AccessoryID)
	}
	if q.From != nil {
		dbq = dbq.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		dbq = dbq.Where("created_at <= ?", *q.To)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return []model.AccessorySale{}, 0, err
	}

	var items []model.AccessorySale
	offset := (q.Page - 1) * q.Limit
	if err := dbq.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.AccessorySale{}, 0, err
	}

	return items, total, nil
}

func (r *AccessorySaleGormRepository) CountByAccessoryID(ctx context.Context, accessoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AccessorySale{}).
		Where("accessory_id = ?", accessoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
