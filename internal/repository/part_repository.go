package repository

import (
	"context"
	"errors"

	"repairshop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type PartListQuery struct {
	Page  int
	Limit int
	Q     string
	BoxID *int64
}

type PartRepository interface {
	FindByID(ctx context.Context, partID int64) (model.Part, error)
	List(ctx context.Context, q PartListQuery) ([]model.Part, int64, error)
	//最低在庫数を下回っている部品
	ListLowStock(ctx context.Context) ([]model.Part, error)
	Create(ctx context.Context, p model.Part) (model.Part, error)
	Update(ctx context.Context, p model.Part) error
	SoftDelete(ctx context.Context, partID int64) error
}
