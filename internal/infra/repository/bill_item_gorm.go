package repository

import (
	"context"

	"repairshop/internal/domain/model"

	"gorm.io/gorm"
)

type BillItemGormRepository struct {
	db *gorm.DB
}

func NewBillItemGormRepository(db *gorm.DB) *BillItemGormRepository {
	return &BillItemGormRepository{db: db}
}

func (r *BillItemGormRepository) CreateBulk(ctx context.Context, billID int64, items []model.BillItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].BillID = billID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *BillItemGormRepository) ListByBillID(ctx context.Context, billID int64) ([]model.BillItem, error) {
	var items []model.BillItem
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.BillItem{}, err
	}
	return items, nil
}

func (r *BillItemGormRepository) DeleteByBillID(ctx context.Context, billID int64) error {
	return r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Delete(&model.BillItem{}).Error
}

func (r *BillItemGormRepository) CountByItem(ctx context.Context, item model.ItemType, itemID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BillItem{}).
		Where("item_type = ? AND item_id = ?", item, itemID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
