package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type RepairJobGormRepository struct {
	db *gorm.DB
}

func NewRepairJobGormRepository(db *gorm.DB) *RepairJobGormRepository {
	return &RepairJobGormRepository{db: db}
}

func (r *RepairJobGormRepository) FindByID(ctx context.Context, repairID int64) (model.RepairJob, error) {
	var job model.RepairJob
	err := r.db.WithContext(ctx).Where("id = ?", repairID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RepairJob{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RepairJob{}, err
	}
	return job, nil
}

func (r *RepairJobGormRepository) List(ctx context.Context, q repo.RepairListQuery) ([]model.RepairJob, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	dbq := r.db.WithContext(ctx).Model(&model.RepairJob{})

	if q.Status != "" {
		dbq = dbq.Where("status = ?", q.Status)
	}
	if q.CustomerID != nil {
		dbq = dbq.Where("customer_id = ?", *q.CustomerID)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return []model.RepairJob{}, 0, err
	}

	var items []model.RepairJob
	offset := (q.Page - 1) * q.Limit
	if err := dbq.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.RepairJob{}, 0, err
	}

	return items, total, nil
}

func (r *RepairJobGormRepository) Create(ctx context.Context, job model.RepairJob) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&job).Error; err != nil {
		return 0, err
	}
	return job.ID, nil
}

func (r *RepairJobGormRepository) UpdateStatus(ctx context.Context, repairID int64, status model.RepairStatus) error {
	res := r.db.WithContext(ctx).Model(&model.RepairJob{}).
		Where("id = ?", repairID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RepairJobGormRepository) Delete(ctx context.Context, repairID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", repairID).Delete(&model.RepairJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
