package repository

import (
	"context"
	"fmt"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 種別に応じて対象テーブルを選ぶ
func stockModel(item model.ItemType) (interface{}, error) {
	switch item {
	case model.ItemTypePart:
		return &model.Part{}, nil
	case model.ItemTypeAccessory:
		return &model.Accessory{}, nil
	default:
		return nil, fmt.Errorf("unknown item type: %s", item)
	}
}

// 在庫が足りるときだけ減らす。確認と減算が1文なので同時実行でも二重減算しない。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, item model.ItemType, itemID int64, qty int64) (bool, error) {
	m, err := stockModel(item)
	if err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).
		Model(m).
		Where("id = ? AND quantity >= ?", itemID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（使用取り消し・修理削除）
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, item model.ItemType, itemID int64, qty int64) error {
	m, err := stockModel(item)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(m).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetStock(ctx context.Context, item model.ItemType, itemID int64, newQty int64) error {
	m, err := stockModel(item)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(m).
		Where("id = ?", itemID).
		Update("quantity", newQty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 減算（0未満にはしない）
func (r *InventoryGormRepository) SubtractStockFloored(ctx context.Context, item model.ItemType, itemID int64, qty int64) error {
	m, err := stockModel(item)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(m).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("GREATEST(quantity - ?, 0)", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) CurrentQuantity(ctx context.Context, item model.ItemType, itemID int64) (int64, error) {
	m, err := stockModel(item)
	if err != nil {
		return 0, err
	}

	var qty int64
	res := r.db.WithContext(ctx).
		Model(m).
		Where("id = ?", itemID).
		Select("quantity").
		Scan(&qty)

	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, repo.ErrNotFound
	}
	return qty, nil
}

// 調整履歴作成
func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(&adj).Error
}
