package repository

import (
	"context"
	"time"

	"repairshop/internal/domain/model"
)

type SaleListQuery struct {
	Page        int
	Limit       int
	AccessoryID *int64
	From        *time.Time
	To          *time.Time
}

type AccessorySaleRepository interface {
	Create(ctx context.Context, sale model.AccessorySale) (int64, error)
	List(ctx context.Context, q SaleListQuery) ([]model.AccessorySale, int64, error)
	CountByAccessoryID(ctx context.Context, accessoryID int64) (int64, error)
}
