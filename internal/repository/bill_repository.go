package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type BillListQuery struct {
	Page          int
	Limit         int
	PaymentStatus string
	CustomerID    *int64
}

type BillRepository interface {
	FindByID(ctx context.Context, billID int64) (model.Bill, error)
	//修理に紐づく請求書の検索（無ければ found=false）
	FindByRepairJobID(ctx context.Context, repairID int64) (model.Bill, bool, error)
	List(ctx context.Context, q BillListQuery) ([]model.Bill, int64, error)
	Create(ctx context.Context, bill model.Bill) (int64, error)
	UpdatePayment(ctx context.Context, billID int64, status model.PaymentStatus, method string) error
	Delete(ctx context.Context, billID int64) error
}
