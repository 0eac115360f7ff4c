package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type BillItemRepository interface {
	CreateBulk(ctx context.Context, billID int64, items []model.BillItem) error
	ListByBillID(ctx context.Context, billID int64) ([]model.BillItem, error)
	DeleteByBillID(ctx context.Context, billID int64) error
	CountByItem(ctx context.Context, item model.ItemType, itemID int64) (int64, error)
}
