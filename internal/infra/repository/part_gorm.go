package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type PartGormRepository struct {
	db *gorm.DB
}

func NewPartGormRepository(db *gorm.DB) *PartGormRepository {
	return &PartGormRepository{db: db}
}

func (r *PartGormRepository) FindByID(ctx context.Context, partID int64) (model.Part, error) {
	var p model.Part
	err := r.db.WithContext(ctx).Where("id = ?", partID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Part{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Part{}, err
	}
	return p, nil
}

func (r *PartGormRepository) List(ctx context.Context, q repo.PartListQuery) ([]model.Part, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	dbq := r.db.WithContext(ctx).Model(&model.Part{})

	if q.Q != "" {
		dbq = dbq.Where("name ILIKE ?", "%"+q.Q+"%")
	}
	if q.BoxID != nil {
		dbq = dbq.Where("storage_box_id = ?", *q.BoxID)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return []model.Part{}, 0, err
	}

	var items []model.Part
	offset := (q.Page - 1) * q.Limit
	if err := dbq.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Part{}, 0, err
	}

	return items, total, nil
}

func (r *PartGormRepository) ListLowStock(ctx context.Context) ([]model.Part, error) {
	var items []model.Part
	err := r.db.WithContext(ctx).
		Where("quantity <= min_quantity").
		Order("quantity asc").
		Find(&items).Error
	if err != nil {
		return []model.Part{}, err
	}
	return items, nil
}

func (r *PartGormRepository) Create(ctx context.Context, p model.Part) (model.Part, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Part{}, err
	}
	return p, nil
}

func (r *PartGormRepository) Update(ctx context.Context, p model.Part) error {
	res := r.db.WithContext(ctx).Model(&model.Part{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":           p.Name,
			"description":    p.Description,
			"repair_price":   p.RepairPrice,
			"sealing_price":  p.SealingPrice,
			"min_quantity":   p.MinQuantity,
			"storage_box_id": p.StorageBoxID,
			"updated_at":     p.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PartGormRepository) SoftDelete(ctx context.Context, partID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", partID).Delete(&model.Part{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
