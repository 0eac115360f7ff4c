package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type AccessoryGormRepository struct {
	db *gorm.DB
}

func NewAccessoryGormRepository(db *gorm.DB) *AccessoryGormRepository {
	return &AccessoryGormRepository{db: db}
}

func (r *AccessoryGormRepository) FindByID(ctx context.Context, accessoryID int64) (model.Accessory, error) {
	var a model.Accessory
	err := r.db.WithContext(ctx).Where("id = ?", accessoryID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Accessory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Accessory{}, err
	}
	return a, nil
}

func (r *AccessoryGormRepository) List(ctx context.Context, q repo.AccessoryListQuery) ([]model.Accessory, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	dbq := r.db.WithContext(ctx).Model(&model.Accessory{})
	if q.Q != "" {
		dbq = dbq.Where("name ILIKE ?", "%"+q.Q+"%")
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return []model.Accessory{}, 0, err
	}

	var items []model.Accessory
	offset := (q.Page - 1) * q.Limit
	if err := dbq.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Accessory{}, 0, err
	}

	return items, total, nil
}

func (r *AccessoryGormRepository) ListLowStock(ctx context.Context) ([]model.Accessory, error) {
	var items []model.Accessory
	err := r.db.WithContext(ctx).
		Where("quantity <= min_quantity").
		Order("quantity asc").
		Find(&items).Error
	if err != nil {
		return []model.Accessory{}, err
	}
	return items, nil
}

func (r *AccessoryGormRepository) Create(ctx context.Context, a model.Accessory) (model.Accessory, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Accessory{}, err
	}
	return a, nil
}

func (r *AccessoryGormRepository) Update(ctx context.Context, a model.Accessory) error {
	//数量は在庫台帳からしか触らない
	res := r.db.WithContext(ctx).Model(&model.Accessory{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":         a.Name,
			"description":  a.Description,
			"price":        a.Price,
			"min_quantity": a.MinQuantity,
			"updated_at":   a.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AccessoryGormRepository) SoftDelete(ctx context.Context, accessoryID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", accessoryID).Delete(&model.Accessory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
