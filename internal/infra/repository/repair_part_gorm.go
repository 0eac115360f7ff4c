package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type RepairPartGormRepository struct {
	db *gorm.DB
}

func NewRepairPartGormRepository(db *gorm.DB) *RepairPartGormRepository {
	return &RepairPartGormRepository{db: db}
}

func (r *RepairPartGormRepository) Create(ctx context.Context, usage model.RepairPartUsage) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&usage).Error; err != nil {
		return 0, err
	}
	return usage.ID, nil
}

func (r *RepairPartGormRepository) ListByRepairJobID(ctx context.Context, repairID int64) ([]model.RepairPartUsage, error) {
	var items []model.RepairPartUsage
	err := r.db.WithContext(ctx).
		Where("repair_job_id = ?", repairID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.RepairPartUsage{}, err
	}
	return items, nil
}

func (r *RepairPartGormRepository) FindLatestByRepairAndPart(ctx context.Context, repairID int64, partID int64) (model.RepairPartUsage, error) {
	var usage model.RepairPartUsage
	err := r.db.WithContext(ctx).
		Where("repair_job_id = ? AND part_id = ?", repairID, partID).
		Order("id desc").
		First(&usage).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RepairPartUsage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RepairPartUsage{}, err
	}
	return usage, nil
}

func (r *RepairPartGormRepository) Delete(ctx context.Context, usageID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", usageID).Delete(&model.RepairPartUsage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RepairPartGormRepository) DeleteByRepairJobID(ctx context.Context, repairID int64) error {
	return r.db.WithContext(ctx).
		Where("repair_job_id = ?", repairID).
		Delete(&model.RepairPartUsage{}).Error
}

func (r *RepairPartGormRepository) CountByPartID(ctx context.Context, partID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RepairPartUsage{}).
		Where("part_id = ?", partID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
