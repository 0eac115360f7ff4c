package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type StorageBoxGormRepository struct {
	db *gorm.DB
}

func NewStorageBoxGormRepository(db *gorm.DB) *StorageBoxGormRepository {
	return &StorageBoxGormRepository{db: db}
}

func (r *StorageBoxGormRepository) FindByID(ctx context.Context, boxID int64) (model.StorageBox, error) {
	var b model.StorageBox
	err := r.db.WithContext(ctx).Where("id = ?", boxID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StorageBox{}, repo.ErrNotFound
	}
	if err != nil {
		return model.StorageBox{}, err
	}
	return b, nil
}

func (r *StorageBoxGormRepository) List(ctx context.Context) ([]model.StorageBox, error) {
	var items []model.StorageBox
	if err := r.db.WithContext(ctx).Order("code asc").Find(&items).Error; err != nil {
		return []model.StorageBox{}, err
	}
	return items, nil
}

func (r *StorageBoxGormRepository) Create(ctx context.Context, b model.StorageBox) (model.StorageBox, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.StorageBox{}, err
	}
	return b, nil
}

func (r *StorageBoxGormRepository) Update(ctx context.Context, b model.StorageBox) error {
	res := r.db.WithContext(ctx).Model(&model.StorageBox{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"code":     b.Code,
			"location": b.Location,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *StorageBoxGormRepository) Delete(ctx context.Context, boxID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", boxID).Delete(&model.StorageBox{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
