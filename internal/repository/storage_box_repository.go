package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type StorageBoxRepository interface {
	FindByID(ctx context.Context, boxID int64) (model.StorageBox, error)
	List(ctx context.Context) ([]model.StorageBox, error)
	Create(ctx context.Context, b model.StorageBox) (model.StorageBox, error)
	Update(ctx context.Context, b model.StorageBox) error
	Delete(ctx context.Context, boxID int64) error
}
