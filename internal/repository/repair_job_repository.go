package repository

import (
	"context"

	"repairshop/internal/domain/model"
)

type RepairListQuery struct {
	Page       int
	Limit      int
	Status     string
	CustomerID *int64
}

type RepairJobRepository interface {
	FindByID(ctx context.Context, repairID int64) (model.RepairJob, error)
	List(ctx context.Context, q RepairListQuery) ([]model.RepairJob, int64, error)
	Create(ctx context.Context, job model.RepairJob) (int64, error)
	UpdateStatus(ctx context.Context, repairID int64, status model.RepairStatus) error
	Delete(ctx context.Context, repairID int64) error
}
