package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type CustomerListQuery struct {
	Page  int
	Limit int
	Q     string
}

type CustomerRepository interface {
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	List(ctx context.Context, q CustomerListQuery) ([]model.Customer, int64, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, customerID int64) error
}
