package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type AccessoryListQuery struct {
	Page  int
	Limit int
	Q     string
}

type AccessoryRepository interface {
	FindByID(ctx context.Context, accessoryID int64) (model.Accessory, error)
	List(ctx context.Context, q AccessoryListQuery) ([]model.Accessory, int64, error)
	ListLowStock(ctx context.Context) ([]model.Accessory, error)
	Create(ctx context.Context, a model.Accessory) (model.Accessory, error)
	Update(ctx context.Context, a model.Accessory) error
	SoftDelete(ctx context.Context, accessoryID int64) error
}
