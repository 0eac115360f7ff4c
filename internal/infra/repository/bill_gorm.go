package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
	repo "repairshop/internal/repository"

	"gorm.io/gorm"
)

type BillGormRepository struct {
	db *gorm.DB
}

func NewBillGormRepository(db *gorm.DB) *BillGormRepository {
	return &BillGormRepository{db: db}
}

func (r *BillGormRepository) FindByID(ctx context.Context, billID int64) (model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Where("id = ?", billID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bill{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Bill{}, err
	}
	return b, nil
}

func (r *BillGormRepository) FindByRepairJobID(ctx context.Context, repairID int64) (model.Bill, bool, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Where("repair_job_id = ?", repairID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bill{}, false, nil
	}
	if err != nil {
		return model.Bill{}, false, err
	}
	return b, true, nil
}

func (r *BillGormRepository) List(ctx context.Context, q repo.BillListQuery) ([]model.Bill, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 50
	}

	dbq := r.db.WithContext(ctx).Model(&model.Bill{})

	if q.PaymentStatus != "" {
		dbq = dbq.Where("payment_status = ?", q.PaymentStatus)
	}
	if q.CustomerID != nil {
		dbq = dbq.Where("customer_id = ?", *q.CustomerID)
	}

	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return []model.Bill{}, 0, err
	}

	var items []model.Bill
	offset := (q.Page - 1) * q.Limit
	if err := dbq.Order("id desc").Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Bill{}, 0, err
	}

	return items, total, nil
}

func (r *BillGormRepository) Create(ctx context.Context, bill model.Bill) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&bill).Error; err != nil {
		return 0, err
	}
	return bill.ID, nil
}

func (r *BillGormRepository) UpdatePayment(ctx context.Context, billID int64, status model.PaymentStatus, method string) error {
	res := r.db.WithContext(ctx).Model(&model.Bill{}).
		Where("id = ?", billID).
		Updates(map[string]interface{}{
			"payment_status": status,
			"payment_method": method,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BillGormRepository) Delete(ctx context.Context, billID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", billID).Delete(&model.Bill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
